package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fix-manufacture-api/internal/dto"
	"fix-manufacture-api/internal/metrics"
	"fix-manufacture-api/internal/repository"
	"fix-manufacture-api/internal/service"
	"fix-manufacture-api/internal/testutil"
	"fix-manufacture-api/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentClient struct{}

func (fakePaymentClient) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	return "secret_" + amount.StringFixed(2), nil
}

type testServer struct {
	srv   *Server
	users service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	recorder := metrics.NewCollector(reg)

	userRepo := repository.NewUserRepository(db)
	roles := service.NewRoleResolver(userRepo)
	tokens := token.NewService("server-secret", time.Hour)
	users := service.NewUserService(userRepo, roles, tokens, log)

	services := Services{
		Catalog: service.NewCatalogService(repository.NewPartRepository(db), repository.NewReviewRepository(db)),
		Orders: service.NewOrderService(repository.NewOrderRepository(db), repository.NewPaymentRepository(db),
			service.DeletePaidAllow, recorder, log),
		Users:    users,
		Payments: service.NewPaymentService(fakePaymentClient{}, "USD", log),
		Roles:    roles,
		Tokens:   tokens,
	}

	return &testServer{
		srv:   NewServer(services, recorder, reg, log),
		users: users,
	}
}

func (ts *testServer) do(t *testing.T, method, target, body, accessToken string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if accessToken != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	ts.srv.echo.ServeHTTP(rec, req)
	return rec
}

// login upserts the user and returns the issued token.
func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPut, "/users/"+email, `{"name":"Test"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.UpsertUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestServer_Liveness(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/health", "", "")
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_ProtectedRoutesRequireCredential(t *testing.T) {
	ts := newTestServer(t)

	routes := []struct{ method, target string }{
		{http.MethodGet, "/orders?email=a@x.com"},
		{http.MethodGet, "/orders/1"},
		{http.MethodPatch, "/orders/1"},
		{http.MethodDelete, "/orders/1"},
		{http.MethodGet, "/all-orders"},
		{http.MethodGet, "/users"},
		{http.MethodPut, "/users/admin/a@x.com"},
		{http.MethodPost, "/parts"},
		{http.MethodPost, "/create-payment-intent"},
	}
	for _, r := range routes {
		rec := ts.do(t, r.method, r.target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.target)

		rec = ts.do(t, r.method, r.target, "", "not-a-token")
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", r.method, r.target)
	}

	rec := ts.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `guard_rejections_total{reason="missing_credential"} 9`)
	assert.Contains(t, rec.Body.String(), `guard_rejections_total{reason="invalid_credential"} 9`)
}

func TestServer_OrderLifecycle(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.login(t, "alice@x.com")
	bob := ts.login(t, "bob@x.com")

	rec := ts.do(t, http.MethodPost, "/orders",
		`{"email":"alice@x.com","partId":"p1","partName":"Gear","quantity":10,"totalPrice":45}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var inserted dto.InsertResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inserted))
	require.NotEmpty(t, inserted.InsertedID)

	rec = ts.do(t, http.MethodGet, "/orders?email=alice@x.com", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, false, orders[0]["paid"])
	assert.Nil(t, orders[0]["transactionId"])

	// bob cannot read alice's orders
	rec = ts.do(t, http.MethodGet, "/orders?email=alice@x.com", "", bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodGet, "/orders?email=bob@x.com", "", bob)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = ts.do(t, http.MethodPatch, "/orders/"+inserted.InsertedID, `{"transactionId":""}`, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/orders/"+inserted.InsertedID, `{"transactionId":"tx1"}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var paid map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &paid))
	assert.Equal(t, true, paid["paid"])
	assert.Equal(t, "tx1", paid["transactionId"])

	rec = ts.do(t, http.MethodPatch, "/orders/"+inserted.InsertedID, `{"transactionId":"tx2"}`, alice)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/orders", `{"email":"alice@x.com","partId":"p2","quantity":1,"totalPrice":3}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var second dto.InsertResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	rec = ts.do(t, http.MethodPatch, "/orders/"+second.InsertedID, `{"transactionId":"tx1"}`, alice)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/orders/missing", `{"transactionId":"tx3"}`, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/orders/missing", "", alice)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = ts.do(t, http.MethodDelete, "/orders/"+inserted.InsertedID, "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, rec.Body.String(), "orders_placed_total 2")
	assert.Contains(t, rec.Body.String(), "payments_confirmed_total 1")
}

func TestServer_PartQuantityOverwrite(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/parts/p1", `{"quantity":9}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"matchedCount":0,"modifiedCount":0,"upsertedCount":1,"upsertedId":"p1"}`,
		rec.Body.String())

	rec = ts.do(t, http.MethodPut, "/parts/p1", `{"quantity":5}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/parts/p1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var part map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &part))
	assert.Equal(t, float64(5), part["available_quantity"])

	rec = ts.do(t, http.MethodPut, "/parts/p1", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/parts/unknown", "", "")
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestServer_AdminRoutes(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.login(t, "alice@x.com")
	root := ts.login(t, "root@x.com")
	_, err := ts.users.Promote(context.Background(), "root@x.com")
	require.NoError(t, err)

	// self-promotion is refused and leaves the role alone
	rec := ts.do(t, http.MethodPut, "/users/admin/alice@x.com", "", alice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodGet, "/admin/alice@x.com", "", "")
	assert.JSONEq(t, `{"admin":false}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/all-orders", "", alice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodPost, "/parts", `{"name":"Gear"}`, alice)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// a valid token for an email without a user record is not an admin
	ghost, err := token.NewService("server-secret", time.Hour).Issue("ghost@x.com")
	require.NoError(t, err)
	rec = ts.do(t, http.MethodGet, "/users", "", ghost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodGet, "/all-orders", "", root)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodPost, "/parts", `{"name":"Gear","price":4.5}`, root)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodGet, "/users", "", root)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	rec = ts.do(t, http.MethodPut, "/users/admin/alice@x.com", "", root)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0}`, rec.Body.String())
	rec = ts.do(t, http.MethodGet, "/admin/alice@x.com", "", "")
	assert.JSONEq(t, `{"admin":true}`, rec.Body.String())
}

func TestServer_LoginKeepsProfile(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/users/alice@x.com", `{"name":"Alice","phone":"555"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, "/users/alice@x.com", `{}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Result["name"])
	assert.Equal(t, "555", resp.Result["phone"])
}

func TestServer_PaymentIntent(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.login(t, "alice@x.com")

	rec := ts.do(t, http.MethodPost, "/create-payment-intent", `{"price":12.5}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"secret_12.50"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/create-payment-intent", `{"price":0}`, alice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
