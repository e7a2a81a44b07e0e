// internal/handlers/orders.go
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchworks/apparel-backend/internal/i18n"
	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/services"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type OrderStore interface {
	PlaceOrder(ctx context.Context, req *services.PlaceOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter services.OrderFilter) ([]models.Order, int64, error)
	CompleteOrder(ctx context.Context, id uuid.UUID, actor string) (*models.Order, error)
	Receipt(ctx context.Context, id uuid.UUID) (*pricing.OrderPriceBreakdown, error)
	UploadReferences(ctx context.Context, id uuid.UUID, presign func(string) (string, error)) ([]services.UploadReference, error)
}

type Presigner interface {
	Presign(ref string) (string, error)
}

type OrderHandler struct {
	orders  OrderStore
	storage Presigner
}

func NewOrderHandler(orders OrderStore, storage Presigner) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		storage: storage,
	}
}

// publicOrder is the view served to anyone holding an order id. Customer
// identity, notes, upload references and personalization stay admin-only.
type publicOrder struct {
	ID                  uuid.UUID          `json:"id"`
	OrderNumber         string             `json:"order_number"`
	Status              models.OrderStatus `json:"status"`
	Currency            string             `json:"currency"`
	PreDiscountSubtotal string             `json:"pre_discount_subtotal"`
	Subtotal            string             `json:"subtotal"`
	OrderDiscount       string             `json:"order_discount"`
	GrandTotal          string             `json:"grand_total"`
	PendingQuotation    int                `json:"pending_quotation"`
	EvaluatedAt         time.Time          `json:"evaluated_at"`
	CompletedAt         *time.Time         `json:"completed_at,omitempty"`
	Lines               []publicOrderLine  `json:"lines"`
}

type publicOrderLine struct {
	Position     int        `json:"position"`
	ProductID    uuid.UUID  `json:"product_id"`
	VariantID    *uuid.UUID `json:"variant_id,omitempty"`
	Quantity     int        `json:"quantity"`
	Mode         string     `json:"mode"`
	UnitPrice    string     `json:"unit_price"`
	Discount     string     `json:"discount"`
	LineTotal    string     `json:"line_total"`
	QuotePending bool       `json:"quote_pending"`
	IsReward     bool       `json:"is_reward"`
	Availability string     `json:"availability"`
}

func newPublicOrder(order *models.Order) publicOrder {
	view := publicOrder{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		Status:              order.Status,
		Currency:            order.Currency,
		PreDiscountSubtotal: order.PreDiscountSubtotal.StringFixed(2),
		Subtotal:            order.Subtotal.StringFixed(2),
		OrderDiscount:       order.OrderDiscount.StringFixed(2),
		GrandTotal:          order.GrandTotal.StringFixed(2),
		PendingQuotation:    order.PendingQuotation,
		EvaluatedAt:         order.EvaluatedAt,
		CompletedAt:         order.CompletedAt,
		Lines:               make([]publicOrderLine, len(order.Lines)),
	}
	for i, line := range order.Lines {
		view.Lines[i] = publicOrderLine{
			Position:     line.Position,
			ProductID:    line.ProductID,
			VariantID:    line.VariantID,
			Quantity:     line.Quantity,
			Mode:         line.Mode,
			UnitPrice:    line.UnitPrice.StringFixed(2),
			Discount:     line.Discount.StringFixed(2),
			LineTotal:    line.LineTotal.StringFixed(2),
			QuotePending: line.QuotePending,
			IsReward:     line.IsReward,
			Availability: line.Availability,
		}
	}
	return view
}

// publicReceipt drops the customer id from store credit grants without
// touching the stored breakdown.
func publicReceipt(breakdown *pricing.OrderPriceBreakdown) *pricing.OrderPriceBreakdown {
	receipt := *breakdown
	receipt.Lines = make([]pricing.LinePriceBreakdown, len(breakdown.Lines))
	for i, line := range breakdown.Lines {
		if line.StoreCredit != nil {
			grant := *line.StoreCredit
			grant.CustomerID = ""
			line.StoreCredit = &grant
		}
		receipt.Lines[i] = line
	}
	receipt.StoreCreditGrants = make([]pricing.StoreCreditGrant, len(breakdown.StoreCreditGrants))
	for i, grant := range breakdown.StoreCreditGrants {
		grant.CustomerID = ""
		receipt.StoreCreditGrants[i] = grant
	}
	return &receipt
}

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, newPublicOrder(order))
}

// GET /admin/orders/:id
func (h *OrderHandler) AdminGetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// GET /orders/:id/receipt
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	breakdown, err := h.orders.Receipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, localizeBreakdown(utils.GetLangFromContext(c), publicReceipt(breakdown)))
}

// GET /admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.OrderFilter{PaginationParams: params}

	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid customer ID", nil)
			return
		}
		filter.CustomerID = &id
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// POST /admin/orders/:id/complete
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := orderID(c)
	if !ok {
		return
	}

	actor, exists := utils.GetActorFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	order, err := h.orders.CompleteOrder(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCompleted),
		"order":   order,
	})
}

// GET /admin/orders/:id/uploads
func (h *OrderHandler) UploadReferences(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	refs, err := h.orders.UploadReferences(c.Request.Context(), id, h.storage.Presign)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"references": refs})
}
