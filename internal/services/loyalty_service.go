// internal/services/loyalty_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
)

type LoyaltyService struct {
	db *gorm.DB
}

type LoyaltySummary struct {
	Customer           *models.Customer          `json:"customer"`
	CompletedOrders    int                       `json:"completed_orders"`
	StoreCreditBalance decimal.Decimal           `json:"store_credit_balance"`
	Grants             []models.StoreCreditGrant `json:"grants"`
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{db: db}
}

// Snapshot counts the customer's completed orders. Guests and unknown ids
// get an empty snapshot, which fails every loyalty gate.
func (s *LoyaltyService) Snapshot(ctx context.Context, customerID string) (pricing.LoyaltySnapshot, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return pricing.LoyaltySnapshot{}, nil
	}

	count, err := s.completedOrders(ctx, id)
	if err != nil {
		return pricing.LoyaltySnapshot{}, err
	}

	return pricing.LoyaltySnapshot{
		CustomerID:      id.String(),
		CompletedOrders: count,
	}, nil
}

func (s *LoyaltyService) StoreCreditBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.WithContext(ctx).Model(&models.StoreCreditGrant{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum store credit: %w", err)
	}
	return balance, nil
}

func (s *LoyaltyService) Summary(ctx context.Context, customerID uuid.UUID) (*LoyaltySummary, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	count, err := s.completedOrders(ctx, customerID)
	if err != nil {
		return nil, err
	}

	balance, err := s.StoreCreditBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var grants []models.StoreCreditGrant
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch store credit grants: %w", err)
	}

	return &LoyaltySummary{
		Customer:           &customer,
		CompletedOrders:    count,
		StoreCreditBalance: balance,
		Grants:             grants,
	}, nil
}

func (s *LoyaltyService) completedOrders(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ? AND status = ?", customerID, models.OrderStatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count completed orders: %w", err)
	}
	return int(count), nil
}
