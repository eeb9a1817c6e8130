package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"wastelink-checkout-gateway/internal/model"
)

type CheckoutRecordRepository interface {
	Create(ctx context.Context, rec *model.CheckoutRecord) error
	UpdateStatus(ctx context.Context, orderID, status string) error
	FindBySession(ctx context.Context, sessionID string) ([]*model.CheckoutRecord, error)
}

type checkoutRecordRepoImpl struct {
	db *gorm.DB
}

func NewCheckoutRecordRepository(db *gorm.DB) CheckoutRecordRepository {
	return &checkoutRecordRepoImpl{
		db: db,
	}
}

func (r *checkoutRecordRepoImpl) Create(ctx context.Context, rec *model.CheckoutRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *checkoutRecordRepoImpl) UpdateStatus(ctx context.Context, orderID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.CheckoutRecord{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *checkoutRecordRepoImpl) FindBySession(ctx context.Context, sessionID string) ([]*model.CheckoutRecord, error) {
	var records []*model.CheckoutRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at").
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	return records, nil
}
