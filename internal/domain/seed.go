package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// SeedActivities fills an empty database with sample activities hosted by
// host. The host is registered first if needed. Nothing is inserted if an
// activity already exists. It returns the number of inserted activities.
func SeedActivities(
	ctx context.Context,
	m *mediator.Mediator,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	host model.RegisterRequest,
	now time.Time,
) (int, error) {
	existing, err := activityRepo.GetList(ctx, 0, 1)
	if err != nil {
		return 0, err
	}

	if len(existing) > 0 {
		return 0, nil
	}

	_, err = userRepo.GetByUsername(ctx, host.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, err = mediator.Send[model.RegisterRequest, model.RegisterResponse](ctx, m, &host)
	}
	if err != nil {
		return 0, err
	}

	ctx = xcontext.WithRequestUsername(ctx, host.Username)
	count := 0
	for i := 1; i <= 9; i++ {
		venue := "Just another pub"
		if i == 2 {
			venue = "Freedom hall"
		}

		_, err := mediator.Send[model.CreateActivityRequest, model.CreateActivityResponse](ctx, m,
			&model.CreateActivityRequest{
				Title:       fmt.Sprintf("Future activity %d", i),
				Description: fmt.Sprintf("Activity Number %d", i),
				Date:        now.AddDate(0, i, 0),
				Category:    "drinks",
				City:        "Nyeri",
				Venue:       venue,
			})
		if err != nil {
			return count, err
		}

		count++
	}

	return count, nil
}
