package repository

import (
	"context"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type AttendanceRepository interface {
	Create(ctx context.Context, data *entity.Attendance) error
	Get(ctx context.Context, userID, activityID string) (*entity.Attendance, error)
	GetHost(ctx context.Context, activityID string) (*entity.Attendance, error)
	GetListByActivityID(ctx context.Context, activityID string) ([]entity.Attendance, error)
	Delete(ctx context.Context, userID, activityID string) error
}

type attendanceRepository struct{}

func NewAttendanceRepository() *attendanceRepository {
	return &attendanceRepository{}
}

func (r *attendanceRepository) Create(ctx context.Context, data *entity.Attendance) error {
	return create(ctx, data)
}

func (r *attendanceRepository) Get(ctx context.Context, userID, activityID string) (*entity.Attendance, error) {
	var record entity.Attendance
	err := xcontext.DB(ctx).
		Where("user_id=? AND activity_id=?", userID, activityID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *attendanceRepository) GetHost(ctx context.Context, activityID string) (*entity.Attendance, error) {
	var record entity.Attendance
	err := xcontext.DB(ctx).
		Where("activity_id=? AND is_host=?", activityID, true).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *attendanceRepository) GetListByActivityID(
	ctx context.Context, activityID string,
) ([]entity.Attendance, error) {
	var records []entity.Attendance
	err := xcontext.DB(ctx).
		Where("activity_id=?", activityID).
		Order("date_joined ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, userID, activityID string) error {
	return checkRemoved(xcontext.DB(ctx).
		Where("user_id=? AND activity_id=?", userID, activityID).
		Delete(&entity.Attendance{}))
}
