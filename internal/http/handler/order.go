package handler

import (
	"net/http"
	"strconv"
	"time"

	"order-service/internal/auth"
	"order-service/internal/domain/order"
	"order-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type OrderHandler struct {
	orderRepo OrderRepository
	userRepo  UserRepository
	notifier  Notifier
}

func NewOrderHandler(orderRepo OrderRepository, userRepo UserRepository, notifier Notifier) *OrderHandler {
	return &OrderHandler{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

type CreateOrderRequest struct {
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	AmountCents int64  `json:"amount_cents"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

func orderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		OrderID:     o.ID.String(),
		UserID:      o.UserID.String(),
		Item:        o.Item,
		Quantity:    o.Quantity,
		AmountCents: o.AmountCents,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateOrderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := validator.ItemName(req.Item); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Quantity(req.Quantity); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.AmountCents(req.AmountCents); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	o, err := h.orderRepo.Create(ctx, order.CreateOrderInput{
		UserID:      userID,
		Item:        req.Item,
		Quantity:    req.Quantity,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgCreateOrderFail)
	}

	// Confirmation mail is best-effort and never blocks the response.
	if u, err := h.userRepo.GetByID(ctx, userID); err == nil {
		logger := c.Logger()
		go func() {
			if err := h.notifier.SendOrderConfirmation(u.Email, o); err != nil {
				logger.Errorf("failed to send order confirmation for %s: %v", o.ID, err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, orderResponse(o))
}

func (h *OrderHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidQueryParam)
	}

	orders, err := h.orderRepo.ListByUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListOrdersFail)
	}

	return c.JSON(http.StatusOK, listResponse(orders, limit, offset))
}

func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrderID)
	}

	o, err := h.orderRepo.GetByID(c.Request().Context(), orderID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	// Ownership is enforced with 404 so order IDs cannot be probed.
	if o.UserID != userID {
		return respondError(c, http.StatusNotFound, msgOrderNotFound)
	}

	return c.JSON(http.StatusOK, orderResponse(o))
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrderID)
	}

	ctx := c.Request().Context()
	o, err := h.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if o.UserID != userID {
		return respondError(c, http.StatusNotFound, msgOrderNotFound)
	}

	if !o.Status.CanTransitionTo(order.StatusCancelled) {
		return respondError(c, http.StatusConflict, msgInvalidOrderStatus)
	}

	// Compare-and-set on the status read above; a concurrent transition makes
	// this fail rather than overwrite.
	if err := h.orderRepo.UpdateStatus(ctx, orderID, o.Status, order.StatusCancelled); err != nil {
		return RespondWithMappedError(c, err)
	}

	return respondMessage(c, http.StatusOK, msgOrderCancelled)
}

// ListAll serves the operator surface behind the static bearer gate.
func (h *OrderHandler) ListAll(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidQueryParam)
	}

	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		s := order.Status(raw)
		if !s.Valid() {
			return respondError(c, http.StatusBadRequest, msgInvalidOrderStatus)
		}
		status = &s
	}

	orders, err := h.orderRepo.List(c.Request().Context(), status, limit, offset)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgListOrdersFail)
	}

	return c.JSON(http.StatusOK, listResponse(orders, limit, offset))
}

// UpdateStatus moves an order through its lifecycle. Only transitions allowed
// by the status machine are accepted.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrderID)
	}

	var req UpdateOrderStatusRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	next := order.Status(req.Status)
	if !next.Valid() {
		return respondError(c, http.StatusBadRequest, msgInvalidOrderStatus)
	}

	ctx := c.Request().Context()
	o, err := h.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if !o.Status.CanTransitionTo(next) {
		return respondError(c, http.StatusConflict, msgInvalidOrderStatus)
	}

	if err := h.orderRepo.UpdateStatus(ctx, orderID, o.Status, next); err != nil {
		return RespondWithMappedError(c, err)
	}

	o.Status = next
	return c.JSON(http.StatusOK, orderResponse(o))
}

func listResponse(orders []*order.Order, limit, offset int) OrderListResponse {
	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Limit:  limit,
		Offset: offset,
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, orderResponse(o))
	}
	return resp
}

func pagination(c echo.Context) (limit, offset int, err error) {
	limit = defaultPageSize

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, msgInvalidQueryParam)
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, msgInvalidQueryParam)
		}
	}

	return limit, offset, nil
}
