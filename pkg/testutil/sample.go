package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/google/uuid"
)

// SampleUser creates a new user in database with randomized fields. The
// sample can be overwritten by non-zero fields of init.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	name := uuid.NewString()[:8]
	sample := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		UserName:     name,
		Email:        name + "@test.com",
		DisplayName:  name,
		PasswordHash: "-",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	err := repository.NewUserRepository().Create(ctx, sample)
	return *sample, err
}

// SampleActivity creates a new activity hosted by hostID.
func SampleActivity(ctx context.Context, hostID string, init *entity.Activity) (entity.Activity, error) {
	sample := &entity.Activity{
		Base:      entity.Base{ID: uuid.NewString()},
		Title:     "Sample " + uuid.NewString()[:8],
		Date:      time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		Category:  "travel",
		City:      "Nyeri",
		Venue:     "Somewhere",
		CreatedBy: hostID,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewActivityRepository().Create(ctx, sample); err != nil {
		return *sample, err
	}

	err := repository.NewAttendanceRepository().Create(ctx, &entity.Attendance{
		UserID:     hostID,
		ActivityID: sample.ID,
		IsHost:     true,
		DateJoined: time.Now(),
	})
	return *sample, err
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
