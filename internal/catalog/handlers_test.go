package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/resibilis/backend-resibilis/internal/common"
)

func newHandlerServer(t *testing.T, svc *Service, userID string) *httptest.Server {
	t.Helper()
	h := &Handler{Service: svc}
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(common.WithUserID(r.Context(), userID))
		}
		h.Routes().ServeHTTP(w, r)
	})
	srv := httptest.NewServer(wrapped)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandlerCRUD(t *testing.T) {
	svc := newTestService(t, newMemStore())
	user := uuid.NewString()
	srv := newHandlerServer(t, svc, user)

	resp, err := http.Post(srv.URL+"/", "application/json",
		strings.NewReader(`{"name": "Haircut", "type": "service", "default_price": 350}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data Item `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	resp.Body.Close()
	created := envelope.Data
	require.Equal(t, "Haircut", created.Name)

	resp, err = http.Get(srv.URL + "/?active=true")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "1", resp.Header.Get("X-Total-Count"))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/"+created.ID,
		strings.NewReader(`{"name": "Premium haircut", "type": "service"}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestHandlerUnauthorized(t *testing.T) {
	svc := newTestService(t, newMemStore())
	srv := newHandlerServer(t, svc, "")

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
