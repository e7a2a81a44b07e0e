// internal/services/promotion_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitchworks/apparel-backend/internal/models"
	"github.com/stitchworks/apparel-backend/internal/pricing"
	"github.com/stitchworks/apparel-backend/internal/utils"
)

const promotionSnapshotKey = "pricing:promotions:snapshot"

// PromotionCache is the slice of the Redis client the snapshot cache uses.
type PromotionCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type PromotionService struct {
	db       *gorm.DB
	cache    PromotionCache
	cacheTTL time.Duration
	logger   logrus.FieldLogger
	load     func(ctx context.Context) ([]pricing.Promotion, error)
}

type PromotionRequest struct {
	Name              string          `json:"name" validate:"required,max=255"`
	Description       string          `json:"description"`
	Type              string          `json:"type" validate:"required,promotion_type"`
	Scope             string          `json:"scope" validate:"required,promotion_scope"`
	TargetID          *string         `json:"target_id" validate:"omitempty,uuid"`
	Value             decimal.Decimal `json:"value"`
	MinQuantity       int             `json:"min_quantity" validate:"min=0"`
	MinOrdersRequired int             `json:"min_orders_required" validate:"min=0"`
	MinOrderValue     decimal.Decimal `json:"min_order_value_condition"`
	RewardProductID   *string         `json:"reward_product_id" validate:"omitempty,uuid"`
	StartDate         time.Time       `json:"start_date" validate:"required"`
	EndDate           *time.Time      `json:"end_date"`
	IsActive          *bool           `json:"is_active"`
}

type PromotionFilter struct {
	utils.PaginationParams
	Type   string
	Scope  string
	Active *bool
}

// NewPromotionService wires the promotion store. cache may be nil, in which
// case every snapshot is read from the database.
func NewPromotionService(db *gorm.DB, cache PromotionCache, cacheTTL time.Duration, logger logrus.FieldLogger) *PromotionService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &PromotionService{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
	s.load = s.loadAll
	return s
}

func (s *PromotionService) Create(ctx context.Context, req *PromotionRequest, actor string) (*models.Promotion, error) {
	promotion := &models.Promotion{IsActive: true}
	if err := s.apply(ctx, promotion, req); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"promotion_id": promotion.ID,
		"type":         promotion.Type,
		"actor":        actor,
	}).Info("Promotion created")

	s.invalidate(ctx)
	return promotion, nil
}

func (s *PromotionService) Update(ctx context.Context, id uuid.UUID, req *PromotionRequest, actor string) (*models.Promotion, error) {
	promotion, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, promotion, req); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(promotion).Error; err != nil {
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"promotion_id": promotion.ID,
		"actor":        actor,
	}).Info("Promotion updated")

	s.invalidate(ctx)
	return promotion, nil
}

func (s *PromotionService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	result := s.db.WithContext(ctx).Delete(&models.Promotion{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromotionNotFound
	}

	s.logger.WithFields(logrus.Fields{
		"promotion_id": id,
		"actor":        actor,
	}).Info("Promotion deleted")

	s.invalidate(ctx)
	return nil
}

func (s *PromotionService) Get(ctx context.Context, id uuid.UUID) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := s.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &promotion, nil
}

func (s *PromotionService) List(ctx context.Context, filter PromotionFilter) ([]models.Promotion, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Promotion{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Scope != "" {
		query = query.Where("scope = ?", filter.Scope)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count promotions: %w", err)
	}

	query = utils.ApplyPagination(query, filter.PaginationParams, "created_at", "start_date", "end_date", "name", "type")

	var promotions []models.Promotion
	if err := query.Find(&promotions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch promotions: %w", err)
	}

	return promotions, total, nil
}

// Active returns the promotions in effect at now, as the engine would see them.
func (s *PromotionService) Active(ctx context.Context, now time.Time) ([]pricing.Promotion, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]pricing.Promotion, 0, len(snapshot))
	for _, p := range snapshot {
		if p.ActiveAt(now) && pricing.ValidatePromotion(p) == nil {
			active = append(active, p)
		}
	}
	return active, nil
}

// Snapshot returns every non-deleted promotion as an immutable engine input.
// A cache failure is logged and falls back to the database.
func (s *PromotionService) Snapshot(ctx context.Context) ([]pricing.Promotion, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, promotionSnapshotKey).Bytes()
		switch {
		case err == nil:
			snapshot, decodeErr := decodeSnapshot(raw)
			if decodeErr == nil {
				return snapshot, nil
			}
			s.logger.WithError(decodeErr).Warn("Discarding unreadable promotion snapshot")
		case !errors.Is(err, redis.Nil):
			s.logger.WithError(err).Warn("Promotion cache unavailable")
		}
	}

	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.Set(ctx, promotionSnapshotKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.WithError(err).Warn("Failed to cache promotion snapshot")
			}
		}
	}

	return snapshot, nil
}

func (s *PromotionService) loadAll(ctx context.Context) ([]pricing.Promotion, error) {
	var promotions []models.Promotion
	if err := s.db.WithContext(ctx).Order("id").Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	snapshot := make([]pricing.Promotion, len(promotions))
	for i, p := range promotions {
		snapshot[i] = p.ToPricing()
	}
	return snapshot, nil
}

func (s *PromotionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, promotionSnapshotKey).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate promotion snapshot")
	}
}

// apply copies req onto promotion and rejects configurations the pricing
// engine would skip.
func (s *PromotionService) apply(ctx context.Context, promotion *models.Promotion, req *PromotionRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	promotion.Name = req.Name
	promotion.Description = req.Description
	promotion.Type = req.Type
	promotion.Scope = req.Scope
	promotion.TargetID = parseOptionalUUID(req.TargetID)
	promotion.Value = req.Value
	promotion.MinQuantity = req.MinQuantity
	promotion.MinOrdersRequired = req.MinOrdersRequired
	promotion.MinOrderValue = req.MinOrderValue
	promotion.RewardProductID = parseOptionalUUID(req.RewardProductID)
	promotion.StartDate = req.StartDate
	promotion.EndDate = req.EndDate
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}
	if promotion.Scope == string(pricing.ScopeAll) {
		promotion.TargetID = nil
	}

	if err := pricing.ValidatePromotion(promotion.ToPricing()); err != nil {
		return err
	}

	return s.checkReferences(ctx, promotion)
}

func (s *PromotionService) checkReferences(ctx context.Context, promotion *models.Promotion) error {
	if promotion.TargetID != nil {
		var model interface{}
		switch pricing.Scope(promotion.Scope) {
		case pricing.ScopeProduct:
			model = &models.Product{}
		case pricing.ScopeCategory:
			model = &models.Category{}
		}
		if model != nil {
			found, err := s.exists(ctx, model, *promotion.TargetID)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: %s %s", ErrPromotionTarget, promotion.Scope, promotion.TargetID)
			}
		}
	}

	if promotion.RewardProductID != nil {
		found, err := s.exists(ctx, &models.Product{}, *promotion.RewardProductID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: reward product %s", ErrPromotionTarget, promotion.RewardProductID)
		}
	}

	return nil
}

func (s *PromotionService) exists(ctx context.Context, model interface{}, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func decodeSnapshot(raw []byte) ([]pricing.Promotion, error) {
	var snapshot []pricing.Promotion
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}
