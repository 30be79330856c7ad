package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/infrastructure/upstream"
	"github.com/sangkips/shopdesk-pos/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	manager := utils.NewJWTManager("secret")
	valid := signed(t, "secret", jwt.MapClaims{"sub": "op-7", "role": "cashier", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signed(t, "other", jwt.MapClaims{"sub": "op-7"}), http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var operator, token string
			router := gin.New()
			router.GET("/", AuthMiddleware(manager), func(c *gin.Context) {
				operator = c.GetString("operator_id")
				token = upstream.TokenFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK {
				if operator != "op-7" {
					t.Errorf("operator = %q", operator)
				}
				if token != valid {
					t.Errorf("token not forwarded to upstream context")
				}
			}
		})
	}
}

func TestRateLimiterPerOperator(t *testing.T) {
	rl := NewOperatorRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.Set("operator_id", c.Query("op"))
	}, rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(op string) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?op="+op, nil))
		return w.Code
	}

	if hit("a") != http.StatusOK || hit("a") != http.StatusOK {
		t.Fatal("burst should be allowed")
	}
	if code := hit("a"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := hit("b"); code != http.StatusOK {
		t.Errorf("other operator should not be limited, got %d", code)
	}
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	if cfg.RequestsPerSecond != 2 || cfg.BurstSize != 120 {
		t.Errorf("unexpected config %+v", cfg)
	}

	def := RateLimiterConfigFrom(0, 60)
	if def != DefaultRateLimiterConfig() {
		t.Errorf("expected defaults, got %+v", def)
	}
}

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key, operatorID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[operatorID+"/"+key], nil
}

func (r *memoryIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.OperatorID+"/"+ikey.Key] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(context.Context) error { return nil }

func TestIdempotencyReplay(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	status := http.StatusCreated

	router := gin.New()
	router.POST("/submit", func(c *gin.Context) {
		c.Set("operator_id", c.Query("op"))
	}, Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})

	post := func(op, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/submit?op="+op, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := post("a", "k1")
	second := post("a", "k1")
	if calls != 1 {
		t.Fatalf("handler ran %d times", calls)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" || second.Body.String() != first.Body.String() || second.Code != http.StatusCreated {
		t.Errorf("replay mismatch: %d %s", second.Code, second.Body.String())
	}

	// Keys are scoped to the operator.
	post("b", "k1")
	if calls != 2 {
		t.Errorf("other operator should not replay, calls=%d", calls)
	}

	// Requests without a key always run.
	post("a", "")
	post("a", "")
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}

	// Server errors are not stored.
	status = http.StatusBadGateway
	post("a", "k2")
	status = http.StatusCreated
	if w := post("a", "k2"); w.Header().Get("X-Idempotency-Replayed") != "" || calls != 6 {
		t.Errorf("failed request should be retried, calls=%d", calls)
	}
}
