package testutil

import (
	"context"
	"time"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

const Password = "Pa$$w0rd"

var (
	// User1 hosts Activity1, User2 hosts Activity2. User2 attends Activity1
	// and follows User1. User3 is not related to anything.
	User1 = &entity.User{
		Base:        entity.Base{ID: "user1"},
		UserName:    "bob",
		Email:       "bob@test.com",
		DisplayName: "Bob",
		Bio:         "Hello, I am Bob",
	}

	User2 = &entity.User{
		Base:        entity.Base{ID: "user2"},
		UserName:    "tom",
		Email:       "tom@test.com",
		DisplayName: "Tom",
	}

	User3 = &entity.User{
		Base:        entity.Base{ID: "user3"},
		UserName:    "jane",
		Email:       "jane@test.com",
		DisplayName: "Jane",
	}

	Users = []*entity.User{User1, User2, User3}

	Activity1 = &entity.Activity{
		Base:        entity.Base{ID: "activity1"},
		Title:       "Past activity 1",
		Description: "Activity 2 months ago",
		Date:        time.Date(2026, 8, 15, 19, 0, 0, 0, time.UTC),
		Category:    "drinks",
		City:        "London",
		Venue:       "Pub",
		CreatedBy:   User1.ID,
	}

	Activity2 = &entity.Activity{
		Base:        entity.Base{ID: "activity2"},
		Title:       "Future activity 1",
		Description: "Activity 1 month in future",
		Date:        time.Date(2026, 11, 15, 19, 0, 0, 0, time.UTC),
		Category:    "culture",
		City:        "Paris",
		Venue:       "Louvre",
		CreatedBy:   User2.ID,
	}

	Activities = []*entity.Activity{Activity1, Activity2}

	Attendances = []*entity.Attendance{
		{UserID: User1.ID, ActivityID: Activity1.ID, IsHost: true, DateJoined: Activity1.Date.Add(-time.Hour)},
		{UserID: User2.ID, ActivityID: Activity2.ID, IsHost: true, DateJoined: Activity2.Date.Add(-time.Hour)},
		{UserID: User2.ID, ActivityID: Activity1.ID, IsHost: false, DateJoined: Activity1.Date},
	}

	Followings = []*entity.Following{
		{ObserverID: User2.ID, TargetID: User1.ID},
	}
)

// CreateFixtureContext returns a MockContext populated with the fixtures.
func CreateFixtureContext() context.Context {
	ctx := MockContext()
	InsertUsers(ctx)
	InsertActivities(ctx)
	InsertFollowings(ctx)
	return ctx
}

func InsertUsers(ctx context.Context) {
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository()
	for _, u := range Users {
		user := *u
		user.PasswordHash = string(hash)
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertActivities(ctx context.Context) {
	activityRepo := repository.NewActivityRepository()
	attendanceRepo := repository.NewAttendanceRepository()

	for _, a := range Activities {
		activity := *a
		if err := activityRepo.Create(ctx, &activity); err != nil {
			panic(err)
		}
	}

	for _, a := range Attendances {
		attendance := *a
		if err := attendanceRepo.Create(ctx, &attendance); err != nil {
			panic(err)
		}
	}
}

func InsertFollowings(ctx context.Context) {
	followingRepo := repository.NewFollowingRepository()
	for _, f := range Followings {
		following := *f
		if err := followingRepo.Create(ctx, &following); err != nil {
			panic(err)
		}
	}
}

// Count returns the number of rows of the table behind model.
func Count(ctx context.Context, model any) int64 {
	var n int64
	if err := xcontext.DB(ctx).Model(model).Count(&n).Error; err != nil {
		panic(err)
	}
	return n
}
