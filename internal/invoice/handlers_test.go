package invoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/resibilis/backend-resibilis/internal/common"
)

func newTestServer(t *testing.T, svc *Service, userID string) *httptest.Server {
	t.Helper()
	h := &Handler{Service: svc}
	mux := http.NewServeMux()
	mux.Handle("/", authStub(userID, h.Routes()))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func authStub(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(common.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

func decodeData(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, into))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error.Code
}

const createBody = `{
	"customer_name": "Maria Santos",
	"customer_email": "maria@business.ph",
	"items": [{"name": "Haircut", "qty": 1, "price": 350}],
	"tax_percent": 12
}`

func TestHandlerCreate(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	srv := newTestServer(t, svc, uuid.NewString())

	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(createBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var inv Invoice
	decodeData(t, resp, &inv)
	require.Equal(t, "RS-20260831-0001", inv.ReceiptNumber)
	require.Equal(t, 392.0, inv.Total)
}

func TestHandlerCreateUnauthenticated(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	srv := newTestServer(t, svc, "")

	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader(createBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestHandlerCreateBadJSON(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	srv := newTestServer(t, svc, uuid.NewString())

	resp, err := http.Post(srv.URL+"/", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "BAD_REQUEST", errorCode(t, resp))
}

func TestHandlerCreateValidationDetails(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	srv := newTestServer(t, svc, uuid.NewString())

	resp, err := http.Post(srv.URL+"/", "application/json",
		strings.NewReader(`{"customer_name": "Maria", "items": []}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
}

func TestHandlerPreview(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	srv := newTestServer(t, svc, uuid.NewString())

	resp, err := http.Post(srv.URL+"/preview", "application/json", strings.NewReader(createBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var calc struct {
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}
	decodeData(t, resp, &calc)
	require.Equal(t, 350.0, calc.Subtotal)
	require.Equal(t, 392.0, calc.Total)
}

func TestHandlerListPagination(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	user := uuid.NewString()
	srv := newTestServer(t, svc, user)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), user, validInput())
		require.NoError(t, err)
	}

	resp, err := http.Get(srv.URL + "/?page=1&limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "3", resp.Header.Get("X-Total-Count"))

	defer resp.Body.Close()
	var envelope struct {
		Data       []Invoice         `json:"data"`
		Pagination common.Pagination `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 2)
	require.Equal(t, 1, envelope.Pagination.Page)
	require.Equal(t, 2, envelope.Pagination.PerPage)
	require.EqualValues(t, 3, envelope.Pagination.TotalItems)
}

func TestHandlerGetNotFound(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	srv := newTestServer(t, svc, uuid.NewString())

	resp, err := http.Get(srv.URL + "/" + uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestHandlerVoidAndDelete(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	user := uuid.NewString()
	srv := newTestServer(t, svc, user)

	inv, err := svc.Create(context.Background(), user, validInput())
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/"+inv.ID+"/void", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var voided Invoice
	decodeData(t, resp, &voided)
	require.Equal(t, StatusVoid, voided.Status)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/"+inv.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandlerDownload(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	user := uuid.NewString()
	srv := newTestServer(t, svc, user)

	inv, err := svc.Create(context.Background(), user, validInput())
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/"+inv.ID+"/download", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var marked Invoice
	decodeData(t, resp, &marked)
	require.NotNil(t, marked.DownloadedAt)
}

func TestHandlerSendEmail(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	enq := &memEnqueuer{}
	svc.Emails = enq
	user := uuid.NewString()
	srv := newTestServer(t, svc, user)

	inv, err := svc.Create(context.Background(), user, validInput())
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/"+inv.ID+"/email", "application/json",
		strings.NewReader(`{"to": "accountant@firm.ph"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body map[string]string
	decodeData(t, resp, &body)
	require.Equal(t, "accountant@firm.ph", body["queued_to"])
	require.Len(t, enq.enqueued, 1)
}
