package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/http/middleware"
	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	submit  *usecase.SubmitOrder
	status  *usecase.UpdateOrderStatus
	queries *usecase.OrderQueries
}

func NewOrderHandler(submit *usecase.SubmitOrder, status *usecase.UpdateOrderStatus, queries *usecase.OrderQueries) *OrderHandler {
	return &OrderHandler{submit: submit, status: status, queries: queries}
}

// quantity accepts a JSON number or a string with a leading integer
// ("3", " 3abc", "2.9"). Anything else reads as 0.
type quantity float64

func (q *quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*q = quantity(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, ok := leadingInt(s); ok {
			*q = quantity(f)
			return nil
		}
	}
	*q = 0
	return nil
}

// leadingInt reads an optional sign and the digits that follow it,
// ignoring whatever trails them.
func leadingInt(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	return f, err == nil
}

// productRef is either a bare id string or a cart product object with _id.
type productRef string

func (r *productRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = productRef(s)
		return nil
	}
	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		*r = ""
		return nil
	}
	if obj.MongoID != "" {
		*r = productRef(obj.MongoID)
	} else {
		*r = productRef(obj.ID)
	}
	return nil
}

type orderItemReq struct {
	ProductID string     `json:"productId"`
	Product   productRef `json:"product"`
	Quantity  quantity   `json:"quantity"`
}

func (it orderItemReq) ref() string {
	if it.ProductID != "" {
		return strings.TrimSpace(it.ProductID)
	}
	return strings.TrimSpace(string(it.Product))
}

type createOrderReq struct {
	Items           []orderItemReq         `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	TotalPrice      *decimal.Decimal       `json:"totalPrice"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	caller, _ := middleware.PrincipalFrom(c)

	items := make([]usecase.DraftItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.DraftItem{ProductID: it.ref(), Quantity: float64(it.Quantity)})
	}

	order, err := h.submit.Execute(c.Request.Context(), usecase.SubmitOrderInput{
		Caller:          caller,
		IdempotencyKey:  c.GetHeader("X-Idempotency-Key"), // prevent duplicated requests
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		writeError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /orders (admin)
func (h *OrderHandler) ListAll(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	orders, err := h.queries.ListAll(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, nonNil(orders))
}

// GET /orders/my-orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	orders, err := h.queries.ListMine(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, nonNil(orders))
}

// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	order, err := h.queries.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /orders/:id/status
func (h *OrderHandler) Status(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	st, err := h.queries.Status(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": st})
}

// PUT /orders/:id/status (admin)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	caller, _ := middleware.PrincipalFrom(c)
	order, err := h.status.Execute(c.Request.Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
