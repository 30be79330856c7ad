// Package numwords spells out rupee amounts the way South Asian invoices
// print them, grouping by hundreds, thousands and lakhs.
package numwords

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousand = 1000
	lakh     = 100000

	// maxDigits bounds the integer digits spelled out. Larger amounts
	// render as "".
	maxDigits = 40
)

var (
	ones  = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

	bigLakh = big.NewInt(lakh)
)

// ToWords spells out the integer part of amount followed by "Only".
// The fractional part is discarded. Zero renders as "Zero".
func ToWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		if w := ToWords(amount.Neg()); w != "" {
			return "Negative " + w
		}
		return ""
	}
	// Checked before Floor so a huge exponent is never expanded.
	if amount.NumDigits()+int(amount.Exponent()) > maxDigits {
		return ""
	}
	return spell(amount.Floor().BigInt())
}

// ToWordsInt is ToWords for whole amounts.
func ToWordsInt(n int64) string {
	if n < 0 {
		return "Negative " + spell(new(big.Int).Neg(big.NewInt(n)))
	}
	return spell(big.NewInt(n))
}

// spell renders a non-negative n.
func spell(n *big.Int) string {
	if n.Sign() == 0 {
		return "Zero"
	}
	return lakhs(n) + " Only"
}

// lakhs renders n with the lakh count itself spelled out, so one crore
// reads "One Hundred Lakh" and each further lakh group adds " Lakh".
func lakhs(n *big.Int) string {
	var groups []int64
	q, r := new(big.Int).Set(n), new(big.Int)
	for q.Sign() > 0 {
		q.DivMod(q, bigLakh, r)
		groups = append(groups, r.Int64())
	}

	var b strings.Builder
	b.WriteString(thousands(groups[len(groups)-1]))
	for i := len(groups) - 2; i >= 0; i-- {
		b.WriteString(" Lakh")
		if groups[i] != 0 {
			b.WriteString(" ")
			b.WriteString(thousands(groups[i]))
		}
	}
	return b.String()
}

func thousands(n int64) string {
	if n < thousand {
		return hundreds(n)
	}
	s := hundreds(n/thousand) + " Thousand"
	if rest := n % thousand; rest != 0 {
		s += " " + hundreds(rest)
	}
	return s
}

func hundreds(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		s := tens[n/10]
		if n%10 != 0 {
			s += " " + ones[n%10]
		}
		return s
	}
	s := ones[n/100] + " Hundred"
	if rest := n % 100; rest != 0 {
		s += " " + hundreds(rest)
	}
	return s
}
