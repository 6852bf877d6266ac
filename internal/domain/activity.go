package domain

import (
	"context"
	"errors"
	"time"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityDomain interface {
	Create(context.Context, *model.CreateActivityRequest) (*model.CreateActivityResponse, error)
	Edit(context.Context, *model.EditActivityRequest) (*mediator.Unit, error)
	Delete(context.Context, *model.DeleteActivityRequest) (*mediator.Unit, error)
	Get(context.Context, *model.GetActivityRequest) (*model.GetActivityResponse, error)
	GetList(context.Context, *model.GetActivitiesRequest) (*model.GetActivitiesResponse, error)
	Attend(context.Context, *model.AttendActivityRequest) (*mediator.Unit, error)
	Unattend(context.Context, *model.UnattendActivityRequest) (*mediator.Unit, error)
}

type activityDomain struct {
	userRepo       repository.UserRepository
	activityRepo   repository.ActivityRepository
	attendanceRepo repository.AttendanceRepository
}

func NewActivityDomain(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	attendanceRepo repository.AttendanceRepository,
) *activityDomain {
	return &activityDomain{
		userRepo:       userRepo,
		activityRepo:   activityRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (d *activityDomain) Create(
	ctx context.Context, req *model.CreateActivityRequest,
) (*model.CreateActivityResponse, error) {
	user, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	activity := &entity.Activity{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
		City:        req.City,
		Venue:       req.Venue,
		CreatedBy:   user.ID,
	}

	if err := d.activityRepo.Create(ctx, activity); err != nil {
		return nil, saveError(ctx, "create activity", err)
	}

	err = d.attendanceRepo.Create(ctx, &entity.Attendance{
		UserID:     user.ID,
		ActivityID: activity.ID,
		IsHost:     true,
		DateJoined: time.Now(),
	})
	if err != nil {
		return nil, saveError(ctx, "create host attendance", err)
	}

	return &model.CreateActivityResponse{ID: activity.ID}, nil
}

func (d *activityDomain) Edit(ctx context.Context, req *model.EditActivityRequest) (*mediator.Unit, error) {
	user, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	if err := d.checkHost(ctx, activity.ID, user.ID, "edit"); err != nil {
		return nil, err
	}

	update := &entity.Activity{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		City:        req.City,
		Venue:       req.Venue,
	}
	if req.Date != nil {
		update.Date = *req.Date
	}

	if err := d.activityRepo.UpdateByID(ctx, activity.ID, update); err != nil {
		return nil, saveError(ctx, "update activity", err)
	}

	return &mediator.Unit{}, nil
}

func (d *activityDomain) Delete(ctx context.Context, req *model.DeleteActivityRequest) (*mediator.Unit, error) {
	user, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	if err := d.checkHost(ctx, activity.ID, user.ID, "delete"); err != nil {
		return nil, err
	}

	if err := d.activityRepo.DeleteByID(ctx, activity.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		return nil, saveError(ctx, "delete activity", err)
	}

	return &mediator.Unit{}, nil
}

func (d *activityDomain) Get(ctx context.Context, req *model.GetActivityRequest) (*model.GetActivityResponse, error) {
	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	result, err := d.convertActivity(ctx, activity)
	if err != nil {
		return nil, err
	}

	resp := model.GetActivityResponse(result)
	return &resp, nil
}

func (d *activityDomain) GetList(
	ctx context.Context, req *model.GetActivitiesRequest,
) (*model.GetActivitiesResponse, error) {
	activities, err := d.activityRepo.GetList(ctx, req.Offset, normalizeLimit(req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of activities: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Activity{}
	for i := range activities {
		activity, err := d.convertActivity(ctx, &activities[i])
		if err != nil {
			return nil, err
		}

		result = append(result, activity)
	}

	return &model.GetActivitiesResponse{Activities: result}, nil
}

func (d *activityDomain) Attend(ctx context.Context, req *model.AttendActivityRequest) (*mediator.Unit, error) {
	user, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	if _, err := d.attendanceRepo.Get(ctx, user.ID, activity.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already attending the activity")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get attendance: %v", err)
		return nil, errorx.Unknown
	}

	err = d.attendanceRepo.Create(ctx, &entity.Attendance{
		UserID:     user.ID,
		ActivityID: activity.ID,
		IsHost:     false,
		DateJoined: time.Now(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Already attending the activity")
		}

		return nil, saveError(ctx, "create attendance", err)
	}

	return &mediator.Unit{}, nil
}

func (d *activityDomain) Unattend(
	ctx context.Context, req *model.UnattendActivityRequest,
) (*mediator.Unit, error) {
	user, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	attendance, err := d.attendanceRepo.Get(ctx, user.ID, activity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Not attending the activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get attendance: %v", err)
		return nil, errorx.Unknown
	}

	if attendance.IsHost {
		return nil, errorx.New(errorx.BadRequest, "The host cannot leave the activity")
	}

	if err := d.attendanceRepo.Delete(ctx, user.ID, activity.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Not attending the activity")
		}

		return nil, saveError(ctx, "delete attendance", err)
	}

	return &mediator.Unit{}, nil
}

// checkHost allows the action only for the hosting attendee of the activity.
func (d *activityDomain) checkHost(ctx context.Context, activityID, userID, action string) error {
	host, err := d.attendanceRepo.GetHost(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "Only the host can %s the activity", action)
		}

		xcontext.Logger(ctx).Errorf("Cannot get host of activity: %v", err)
		return errorx.Unknown
	}

	if host.UserID != userID {
		return errorx.New(errorx.PermissionDenied, "Only the host can %s the activity", action)
	}

	return nil
}

// convertActivity loads the attendees of activity. They are looked up on
// demand, entities never carry their relations.
func (d *activityDomain) convertActivity(ctx context.Context, activity *entity.Activity) (model.Activity, error) {
	attendances, err := d.attendanceRepo.GetListByActivityID(ctx, activity.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get attendances: %v", err)
		return model.Activity{}, errorx.Unknown
	}

	userIDs := []string{}
	for _, a := range attendances {
		userIDs = append(userIDs, a.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get attendees: %v", err)
		return model.Activity{}, errorx.Unknown
	}

	userSet := map[string]*entity.User{}
	for i := range users {
		userSet[users[i].ID] = &users[i]
	}

	hostUsername := ""
	attendees := []model.Profile{}
	for _, a := range attendances {
		user, ok := userSet[a.UserID]
		if !ok {
			continue
		}

		if a.IsHost {
			hostUsername = user.UserName
		}

		attendees = append(attendees, model.ConvertProfile(user))
	}

	return model.ConvertActivity(activity, hostUsername, attendees), nil
}
