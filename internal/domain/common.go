package domain

import (
	"context"
	"errors"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// currentUser resolves the authenticated user of the request. A missing or
// stale identity is always an authentication error.
func currentUser(ctx context.Context, userRepo repository.UserRepository) (*entity.User, error) {
	username := xcontext.RequestUsername(ctx)
	if username == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authorized")
	}

	user, err := userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Not authorized")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the current user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

func getActivity(
	ctx context.Context, activityRepo repository.ActivityRepository, id string,
) (*entity.Activity, error) {
	activity, err := activityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	return activity, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}

	if limit > maxLimit {
		return maxLimit
	}

	return limit
}

// saveError passes expected store errors, such as a write which changed
// nothing, through to the client and hides the others.
func saveError(ctx context.Context, action string, err error) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx
	}

	xcontext.Logger(ctx).Errorf("Cannot %s: %v", action, err)
	return errorx.Unknown
}
