package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func ok(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func TestDisabledLimiterPassesThrough(t *testing.T) {
	rl := NewRateLimiter(0, 5)
	if rl != nil {
		t.Fatal("zero rate should disable the limiter")
	}
	h := rl.Limit(ok)
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d limited while disabled", i)
		}
	}
}

func TestLimiterPerIP(t *testing.T) {
	h := NewRateLimiter(0.001, 2).Limit(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h(rec, req, nil)
		return rec.Code
	}

	if call("10.0.0.1:1000") != http.StatusOK || call("10.0.0.1:1001") != http.StatusOK {
		t.Fatal("burst requests should pass")
	}
	if code := call("10.0.0.1:1002"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := call("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("other clients should have their own bucket, got %d", code)
	}
}
