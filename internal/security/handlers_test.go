package security

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func postValidateEmail(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ValidateEmail(rr, req)
	return rr
}

func TestValidateEmailHandlerAccepts(t *testing.T) {
	h := &Handler{Logger: zerolog.Nop()}
	rr := postValidateEmail(t, h, `{"email":"maria@business.ph"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Data.Valid {
		t.Fatal("expected valid=true")
	}
}

func TestValidateEmailHandlerRejects(t *testing.T) {
	h := &Handler{Logger: zerolog.Nop()}
	cases := []struct {
		name string
		body string
		code string
	}{
		{name: "missing email", body: `{}`, code: "EMAIL_REQUIRED"},
		{name: "bad format", body: `{"email":"not-an-email"}`, code: "EMAIL_INVALID"},
		{name: "disposable", body: `{"email":"x@mailinator.com"}`, code: "EMAIL_DISPOSABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postValidateEmail(t, h, tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, resp.Error.Code)
			}
		})
	}
}

func TestValidateEmailHandlerBadPayload(t *testing.T) {
	h := &Handler{Logger: zerolog.Nop()}
	rr := postValidateEmail(t, h, `{`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on malformed JSON, got %d", rr.Code)
	}
}

func TestValidateEmailHandlerVerifierFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := &Handler{
		Verifier: NewRemoteVerifier(srv.URL, "key", http.DefaultTransport),
		Logger:   zerolog.Nop(),
	}
	rr := postValidateEmail(t, h, `{"email":"maria@business.ph"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rr.Code)
	}
}

func TestValidateEmailHandlerVerifierRejectsUndeliverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"deliverable":false}`))
	}))
	defer srv.Close()

	h := &Handler{
		Verifier: NewRemoteVerifier(srv.URL, "key", http.DefaultTransport),
		Logger:   zerolog.Nop(),
	}
	rr := postValidateEmail(t, h, `{"email":"ghost@business.ph"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undeliverable, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "EMAIL_UNDELIVERABLE") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}
