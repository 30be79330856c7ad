package enum

import "encoding/json"

// CartState tracks whether a cart session accepts edits.
type CartState int

const (
	CartStateOpen       CartState = 0
	CartStateSubmitting CartState = 1
)

func (s CartState) String() string {
	return [...]string{"Open", "Submitting"}[s]
}

func (s CartState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
