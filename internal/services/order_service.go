// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/database"
	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

type OrderService struct {
	db     *gorm.DB
	quotes *QuoteService
	clock  func() time.Time
	logger logrus.FieldLogger
}

type PlaceOrderRequest struct {
	QuoteRequest
	Channel string `json:"channel" validate:"omitempty,oneof=storefront pos"`
	Notes   string `json:"notes" validate:"max=2000"`
}

type OrderFilter struct {
	utils.PaginationParams
	CustomerID *uuid.UUID
}

// UploadReference is one customer-supplied image on a quote-pending line.
type UploadReference struct {
	LineID       uuid.UUID `json:"line_id"`
	Position     int       `json:"position"`
	Ref          string    `json:"ref"`
	URL          string    `json:"url"`
	Instructions string    `json:"instructions,omitempty"`
}

func NewOrderService(db *gorm.DB, quotes *QuoteService, clock func() time.Time, logger logrus.FieldLogger) *OrderService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderService{
		db:     db,
		quotes: quotes,
		clock:  clock,
		logger: logger,
	}
}

// PlaceOrder prices the request and stores the order together with the exact
// breakdown the customer saw, so receipts never re-run pricing.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id := uuid.MustParse(req.CustomerID)
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return nil, ErrCustomerNotFound
		}
		customerID = &id
	}

	breakdown, err := s.quotes.Quote(ctx, &req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	order, err := buildOrder(req, customerID, breakdown)
	if err != nil {
		return nil, err
	}
	if order.OrderNumber, err = utils.GenerateOrderNumber(s.clock()); err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if customerID == nil {
			return nil
		}
		for _, grant := range breakdown.StoreCreditGrants {
			promotionID, err := uuid.Parse(grant.PromotionID)
			if err != nil {
				continue
			}
			record := &models.StoreCreditGrant{
				CustomerID:  *customerID,
				OrderID:     order.ID,
				PromotionID: promotionID,
				Amount:      grant.Amount,
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record store credit: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":          order.ID,
		"order_number":      order.OrderNumber,
		"grand_total":       order.GrandTotal.StringFixed(2),
		"pending_quotation": order.PendingQuotation,
	}).Info("Order placed")

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplyPagination(query, filter.PaginationParams, "created_at", "grand_total", "status")

	var orders []models.Order
	if err := query.Omit("Breakdown").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// CompleteOrder marks a placed order completed. Completed orders are what
// loyalty gates count.
func (s *OrderService) CompleteOrder(ctx context.Context, id uuid.UUID, actor string) (*models.Order, error) {
	now := s.clock()
	result := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderStatusPlaced).
		Updates(map[string]interface{}{
			"status":       models.OrderStatusCompleted,
			"completed_at": now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to complete order: %w", result.Error)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotCompletable
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": id,
		"actor":    actor,
	}).Info("Order completed")

	return order, nil
}

// Receipt returns the breakdown stored when the order was placed.
func (s *OrderService) Receipt(ctx context.Context, id uuid.UUID) (*pricing.OrderPriceBreakdown, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Select("id", "breakdown").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var breakdown pricing.OrderPriceBreakdown
	if err := order.Breakdown.Decode(&breakdown); err != nil {
		return nil, fmt.Errorf("malformed stored breakdown: %w", err)
	}
	return &breakdown, nil
}

// UploadReferences lists the reference images of an order's quote-pending
// lines, signed by presign when storage is configured.
func (s *OrderService) UploadReferences(ctx context.Context, id uuid.UUID, presign func(string) (string, error)) ([]UploadReference, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	refs := []UploadReference{}
	for _, line := range order.Lines {
		if !line.QuotePending {
			continue
		}
		for _, ref := range line.UploadRefs {
			url, err := presign(ref)
			if err != nil {
				return nil, err
			}
			refs = append(refs, UploadReference{
				LineID:       line.ID,
				Position:     line.Position,
				Ref:          ref,
				URL:          url,
				Instructions: line.Instructions,
			})
		}
	}
	return refs, nil
}

func buildOrder(req *PlaceOrderRequest, customerID *uuid.UUID, breakdown *pricing.OrderPriceBreakdown) (*models.Order, error) {
	stored, err := models.ToJSONB(breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to encode breakdown: %w", err)
	}

	channel := models.OrderChannel(req.Channel)
	if channel == "" {
		channel = models.OrderChannelStorefront
	}

	order := &models.Order{
		CustomerID:          customerID,
		Channel:             channel,
		Status:              models.OrderStatusPlaced,
		Currency:            breakdown.Currency,
		PreDiscountSubtotal: breakdown.PreDiscountSubtotal,
		Subtotal:            breakdown.Subtotal,
		OrderDiscount:       breakdown.OrderDiscount,
		GrandTotal:          breakdown.GrandTotal,
		PendingQuotation:    breakdown.PendingQuotation,
		OrderPromotionID:    parseOptionalUUID(breakdown.OrderPromotionID),
		Breakdown:           stored,
		EvaluatedAt:         breakdown.EvaluatedAt,
		Notes:               req.Notes,
	}

	for i, b := range breakdown.Lines {
		productID, err := uuid.Parse(b.ProductID)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid product id %q", i, b.ProductID)
		}

		line := models.OrderLine{
			Position:     i,
			ProductID:    productID,
			VariantID:    parseOptionalUUID(&b.VariantID),
			Quantity:     b.Quantity,
			Mode:         string(pricing.LineModeGallery),
			UnitPrice:    b.UnitPrice,
			Discount:     b.Discount,
			LineTotal:    b.LineTotal,
			PromotionID:  parseOptionalUUID(b.PromotionID),
			QuotePending: b.QuotePending,
			IsReward:     b.IsReward,
			Availability: string(b.Availability),
		}

		// Reward lines come after every requested line.
		if i < len(req.Lines) {
			requested := req.Lines[i]
			line.Mode = requested.Mode
			line.UploadRefs = requested.UploadRefs
			line.Instructions = requested.Instructions
			customization, err := models.ToJSONB(struct {
				Designs         []DesignRequest         `json:"designs,omitempty"`
				Personalization *PersonalizationRequest `json:"personalization,omitempty"`
			}{requested.Designs, requested.Personalization})
			if err != nil {
				return nil, fmt.Errorf("failed to encode customization: %w", err)
			}
			line.Customization = customization
		}

		order.Lines = append(order.Lines, line)
	}

	return order, nil
}
