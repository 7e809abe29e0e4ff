package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/resibilis/backend-resibilis/internal/common"
)

// CSRF protects the cookie-based refresh flow using the double-submit
// technique. Requests authenticated with a bearer token are exempt.
type CSRF struct {
	Header string
	// SessionCookies lists the auth cookies whose presence makes a request
	// CSRF-relevant. Requests without any of them (first login, pure API
	// clients) pass through.
	SessionCookies []string
}

// NewToken generates a random token suitable for the double-submit pair.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Middleware enforces that non-idempotent requests include a CSRF token header matching a cookie.
func (c CSRF) Middleware(next http.Handler) http.Handler {
	headerName := strings.TrimSpace(c.Header)
	if headerName == "" {
		headerName = "X-CSRF-Token"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions || method == http.MethodTrace {
			next.ServeHTTP(w, r)
			return
		}

		auth := strings.TrimSpace(r.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		if len(c.SessionCookies) > 0 && !hasAnyCookie(r, c.SessionCookies) {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimSpace(r.Header.Get(headerName))
		if token == "" {
			common.JSONError(w, http.StatusForbidden, "CSRF_TOKEN_MISSING", "missing csrf token", nil)
			return
		}

		cookie, err := r.Cookie(headerName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			common.JSONError(w, http.StatusForbidden, "CSRF_COOKIE_MISSING", "missing csrf cookie", nil)
			return
		}

		if constantTimeEqual(token, cookie.Value) != 1 {
			common.JSONError(w, http.StatusForbidden, "CSRF_TOKEN_INVALID", "invalid csrf token", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hasAnyCookie(r *http.Request, names []string) bool {
	for _, name := range names {
		if c, err := r.Cookie(name); err == nil && strings.TrimSpace(c.Value) != "" {
			return true
		}
	}
	return false
}

func constantTimeEqual(a, b string) int {
	if len(a) != len(b) {
		return 0
	}
	if len(a) == 0 {
		return 1
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b))
}
