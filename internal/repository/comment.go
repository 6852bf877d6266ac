package repository

import (
	"context"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetListByActivityID(ctx context.Context, activityID string, offset, limit int) ([]entity.Comment, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return create(ctx, data)
}

func (r *commentRepository) GetListByActivityID(
	ctx context.Context, activityID string, offset, limit int,
) ([]entity.Comment, error) {
	var records []entity.Comment
	tx := xcontext.DB(ctx).Where("activity_id=?", activityID).Order("created_at ASC").Order("id ASC")
	if err := pagination(tx, offset, limit).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
