package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-service/internal/auth"
	"order-service/internal/domain/order"
	"order-service/internal/domain/user"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderHandler(t *testing.T) (*OrderHandler, *fakeOrderRepo, *fakeUserRepo, *fakeNotifier) {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	userRepo := newFakeUserRepo()
	notifier := newFakeNotifier()
	h := NewOrderHandler(orderRepo, userRepo, notifier)
	return h, orderRepo, userRepo, notifier
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(auth.ContextKeyUserID, userID)
	c.Set(auth.ContextKeyAuthType, auth.AuthTypeJWT)
	return c
}

func TestOrderHandler_Create(t *testing.T) {
	h, _, userRepo, notifier := newOrderHandler(t)
	e := echo.New()

	u, err := userRepo.Create(nil, user.CreateUserInput{Email: "alice@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/orders", `{"item":"widget","quantity":3,"amount_cents":1999}`)

	require.NoError(t, h.Create(authedContext(e, req, rec, u.ID)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "widget", resp.Item)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, int64(1999), resp.AmountCents)
	assert.Equal(t, string(order.StatusPending), resp.Status)
	assert.Equal(t, u.ID.String(), resp.UserID)

	select {
	case <-notifier.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("expected order confirmation to be sent")
	}
}

func TestOrderHandler_CreateRejectsInvalidInput(t *testing.T) {
	h, _, userRepo, _ := newOrderHandler(t)
	e := echo.New()

	u, err := userRepo.Create(nil, user.CreateUserInput{Email: "alice@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"empty item", `{"item":"","quantity":1,"amount_cents":100}`},
		{"zero quantity", `{"item":"widget","quantity":0,"amount_cents":100}`},
		{"negative quantity", `{"item":"widget","quantity":-2,"amount_cents":100}`},
		{"negative amount", `{"item":"widget","quantity":1,"amount_cents":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := jsonRequest(http.MethodPost, "/api/orders", tt.body)
			require.NoError(t, h.Create(authedContext(e, req, rec, u.ID)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestOrderHandler_GetEnforcesOwnership(t *testing.T) {
	h, orderRepo, _, _ := newOrderHandler(t)
	e := echo.New()

	owner := uuid.New()
	stranger := uuid.New()

	o, err := orderRepo.Create(nil, order.CreateOrderInput{UserID: owner, Item: "widget", Quantity: 1, AmountCents: 100})
	require.NoError(t, err)

	// Owner sees the order.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+o.ID.String(), nil)
	c := authedContext(e, req, rec, owner)
	c.SetParamNames("id")
	c.SetParamValues(o.ID.String())
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another user gets 404, not 403, so order IDs cannot be probed.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+o.ID.String(), nil)
	c = authedContext(e, req, rec, stranger)
	c.SetParamNames("id")
	c.SetParamValues(o.ID.String())
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_Cancel(t *testing.T) {
	tests := []struct {
		name   string
		status order.Status
		code   int
	}{
		{"pending order cancels", order.StatusPending, http.StatusOK},
		{"paid order cancels", order.StatusPaid, http.StatusOK},
		{"shipped order cannot cancel", order.StatusShipped, http.StatusConflict},
		{"cancelled order cannot cancel again", order.StatusCancelled, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orderRepo, _, _ := newOrderHandler(t)
			e := echo.New()
			owner := uuid.New()

			o, err := orderRepo.Create(nil, order.CreateOrderInput{UserID: owner, Item: "widget", Quantity: 1, AmountCents: 100})
			require.NoError(t, err)
			orderRepo.setStatus(o.ID, tt.status)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/orders/"+o.ID.String()+"/cancel", nil)
			c := authedContext(e, req, rec, owner)
			c.SetParamNames("id")
			c.SetParamValues(o.ID.String())

			require.NoError(t, h.Cancel(c))
			assert.Equal(t, tt.code, rec.Code)

			if tt.code == http.StatusOK {
				updated, err := orderRepo.GetByID(nil, o.ID)
				require.NoError(t, err)
				assert.Equal(t, order.StatusCancelled, updated.Status)
			}
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name string
		from order.Status
		to   string
		code int
	}{
		{"pending to paid", order.StatusPending, "paid", http.StatusOK},
		{"paid to shipped", order.StatusPaid, "shipped", http.StatusOK},
		{"pending to shipped skips payment", order.StatusPending, "shipped", http.StatusConflict},
		{"shipped is terminal", order.StatusShipped, "paid", http.StatusConflict},
		{"unknown status", order.StatusPending, "teleported", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orderRepo, _, _ := newOrderHandler(t)
			e := echo.New()

			o, err := orderRepo.Create(nil, order.CreateOrderInput{UserID: uuid.New(), Item: "widget", Quantity: 1, AmountCents: 100})
			require.NoError(t, err)
			orderRepo.setStatus(o.ID, tt.from)

			rec := httptest.NewRecorder()
			req := jsonRequest(http.MethodPut, "/internal/orders/"+o.ID.String()+"/status", `{"status":"`+tt.to+`"}`)
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(o.ID.String())

			require.NoError(t, h.UpdateStatus(c))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestOrderHandler_UpdateStatusLosesRaceToConcurrentTransition(t *testing.T) {
	h, orderRepo, _, _ := newOrderHandler(t)
	e := echo.New()

	o, err := orderRepo.Create(nil, order.CreateOrderInput{UserID: uuid.New(), Item: "widget", Quantity: 1, AmountCents: 100})
	require.NoError(t, err)
	orderRepo.setStatus(o.ID, order.StatusPaid)

	// Another writer ships the order between this handler's read and its
	// update. The stale update must fail instead of resurrecting "paid".
	orderRepo.afterGet = func() {
		orderRepo.setStatus(o.ID, order.StatusShipped)
	}

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPut, "/internal/orders/"+o.ID.String()+"/status", `{"status":"cancelled"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(o.ID.String())

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	orderRepo.afterGet = nil
	final, err := orderRepo.GetByID(nil, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, final.Status)
}

func TestOrderHandler_CancelLosesRaceToConcurrentTransition(t *testing.T) {
	h, orderRepo, _, _ := newOrderHandler(t)
	e := echo.New()
	owner := uuid.New()

	o, err := orderRepo.Create(nil, order.CreateOrderInput{UserID: owner, Item: "widget", Quantity: 1, AmountCents: 100})
	require.NoError(t, err)
	orderRepo.setStatus(o.ID, order.StatusPaid)

	orderRepo.afterGet = func() {
		orderRepo.setStatus(o.ID, order.StatusShipped)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+o.ID.String()+"/cancel", nil)
	c := authedContext(e, req, rec, owner)
	c.SetParamNames("id")
	c.SetParamValues(o.ID.String())

	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	orderRepo.afterGet = nil
	final, err := orderRepo.GetByID(nil, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, final.Status)
}

func TestOrderHandler_ListAll(t *testing.T) {
	h, orderRepo, _, _ := newOrderHandler(t)
	e := echo.New()

	o1, err := orderRepo.Create(nil, order.CreateOrderInput{UserID: uuid.New(), Item: "widget", Quantity: 1, AmountCents: 100})
	require.NoError(t, err)
	_, err = orderRepo.Create(nil, order.CreateOrderInput{UserID: uuid.New(), Item: "gadget", Quantity: 2, AmountCents: 200})
	require.NoError(t, err)
	orderRepo.setStatus(o1.ID, order.StatusPaid)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/orders?status=paid", nil)
	require.NoError(t, h.ListAll(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, o1.ID.String(), resp.Orders[0].OrderID)
}

func TestOrderHandler_ListAllRejectsUnknownStatus(t *testing.T) {
	h, _, _, _ := newOrderHandler(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/orders?status=bogus", nil)
	require.NoError(t, h.ListAll(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_ListRejectsBadPagination(t *testing.T) {
	h, _, _, _ := newOrderHandler(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?limit=abc", nil)
	require.NoError(t, h.List(authedContext(e, req, rec, uuid.New())))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
