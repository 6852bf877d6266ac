package repository

import (
	"context"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type ActivityRepository interface {
	Create(ctx context.Context, data *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Activity, error)
	UpdateByID(ctx context.Context, id string, data *entity.Activity) error
	DeleteByID(ctx context.Context, id string) error
}

type activityRepository struct{}

func NewActivityRepository() *activityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, data *entity.Activity) error {
	return create(ctx, data)
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	var record entity.Activity
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *activityRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Activity, error) {
	var records []entity.Activity
	tx := pagination(xcontext.DB(ctx).Order("date ASC").Order("id ASC"), offset, limit)
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateByID updates only the non-zero fields of data.
func (r *activityRepository) UpdateByID(ctx context.Context, id string, data *entity.Activity) error {
	updateMap := map[string]any{}
	if data.Title != "" {
		updateMap["title"] = data.Title
	}

	if data.Description != "" {
		updateMap["description"] = data.Description
	}

	if !data.Date.IsZero() {
		updateMap["date"] = data.Date
	}

	if data.Category != "" {
		updateMap["category"] = data.Category
	}

	if data.City != "" {
		updateMap["city"] = data.City
	}

	if data.Venue != "" {
		updateMap["venue"] = data.Venue
	}

	if len(updateMap) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.Activity{}).Where("id=?", id).Updates(updateMap)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoChanges
	}

	return nil
}

func (r *activityRepository) DeleteByID(ctx context.Context, id string) error {
	return checkRemoved(xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Activity{}))
}
