package domain

import (
	"sync"
	"testing"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/testutil"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_activityDomain_Create(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	m := newTestMediator(t, nil)

	resp, err := mediator.Send[model.CreateActivityRequest, model.CreateActivityResponse](
		ctx, m, &model.CreateActivityRequest{
			Title:    "Future activity 3",
			Date:     fixedTime(),
			Category: "music",
			City:     "London",
			Venue:    "O2 Arena",
		})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	activity, err := mediator.Send[model.GetActivityRequest, model.GetActivityResponse](
		ctx, m, &model.GetActivityRequest{ActivityID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "Future activity 3", activity.Title)
	require.Equal(t, testutil.User3.UserName, activity.HostUsername)
	require.Len(t, activity.Attendees, 1)
	require.True(t, fixedTime().Equal(activity.Date))
}

func Test_activityDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	m := newTestMediator(t, nil)

	_, err := mediator.Send[model.CreateActivityRequest, model.CreateActivityResponse](
		ctx, m, &model.CreateActivityRequest{City: "London"})
	require.True(t, errorx.Is(err, errorx.Validation))
	require.EqualValues(t, len(testutil.Activities), testutil.Count(ctx, &entity.Activity{}))
}

func Test_activityDomain_BlankTitle(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User1.UserName)
	m := newTestMediator(t, nil)

	_, err := mediator.Send[model.CreateActivityRequest, model.CreateActivityResponse](
		ctx, m, &model.CreateActivityRequest{Title: " \n "})
	require.True(t, errorx.Is(err, errorx.Validation), "got %v", err)
	require.EqualValues(t, len(testutil.Activities), testutil.Count(ctx, &entity.Activity{}))

	_, err = mediator.Send[model.EditActivityRequest, mediator.Unit](
		ctx, m, &model.EditActivityRequest{ActivityID: testutil.Activity1.ID, Title: "  "})
	require.True(t, errorx.Is(err, errorx.Validation), "got %v", err)

	activity, err := repository.NewActivityRepository().GetByID(ctx, testutil.Activity1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Activity1.Title, activity.Title)
}

func Test_activityDomain_Create_Unauthenticated(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	m := newTestMediator(t, nil)

	_, err := mediator.Send[model.CreateActivityRequest, model.CreateActivityResponse](
		ctx, m, &model.CreateActivityRequest{Title: "No owner"})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))
	require.EqualValues(t, len(testutil.Activities), testutil.Count(ctx, &entity.Activity{}))
}

func Test_activityDomain_Delete(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		id       string
		wantErr  error
	}{
		{
			name:     "never created",
			username: testutil.User1.UserName,
			id:       "unknown",
			wantErr:  errorx.New(errorx.NotFound, "Not found activity"),
		},
		{
			name:     "not the host",
			username: testutil.User2.UserName,
			id:       testutil.Activity1.ID,
			wantErr:  errorx.New(errorx.PermissionDenied, "Only the host can delete the activity"),
		},
		{
			name:     "happy case",
			username: testutil.User1.UserName,
			id:       testutil.Activity1.ID,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.CreateFixtureContext()
			ctx = xcontext.WithRequestUsername(ctx, tt.username)
			m := newTestMediator(t, nil)

			activities := testutil.Count(ctx, &entity.Activity{})
			attendances := testutil.Count(ctx, &entity.Attendance{})

			_, err := mediator.Send[model.DeleteActivityRequest, mediator.Unit](
				ctx, m, &model.DeleteActivityRequest{ActivityID: tt.id})
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				require.Equal(t, activities, testutil.Count(ctx, &entity.Activity{}))
				require.Equal(t, attendances, testutil.Count(ctx, &entity.Attendance{}))
				return
			}

			require.NoError(t, err)
			require.Equal(t, activities-1, testutil.Count(ctx, &entity.Activity{}))
			require.Equal(t, attendances-2, testutil.Count(ctx, &entity.Attendance{}))
		})
	}
}

func Test_activityDomain_Delete_HostAttendance(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	m := newTestMediator(t, nil)

	// The creator handed the activity over, User3 is the hosting attendee.
	activity, err := testutil.SampleActivity(ctx, testutil.User3.ID, &entity.Activity{CreatedBy: testutil.User1.ID})
	require.NoError(t, err)

	creatorCtx := xcontext.WithRequestUsername(ctx, testutil.User1.UserName)
	_, err = mediator.Send[model.DeleteActivityRequest, mediator.Unit](
		creatorCtx, m, &model.DeleteActivityRequest{ActivityID: activity.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the host can delete the activity"), err)

	hostCtx := xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	_, err = mediator.Send[model.DeleteActivityRequest, mediator.Unit](
		hostCtx, m, &model.DeleteActivityRequest{ActivityID: activity.ID})
	require.NoError(t, err)
	require.EqualValues(t, len(testutil.Activities), testutil.Count(ctx, &entity.Activity{}))
}

func Test_activityDomain_Edit(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	m := newTestMediator(t, nil)

	hostCtx := xcontext.WithRequestUsername(ctx, testutil.User1.UserName)
	date := fixedTime()
	_, err := mediator.Send[model.EditActivityRequest, mediator.Unit](hostCtx, m, &model.EditActivityRequest{
		ActivityID: testutil.Activity1.ID,
		Venue:      "Another pub",
		Date:       &date,
	})
	require.NoError(t, err)

	activity, err := repository.NewActivityRepository().GetByID(ctx, testutil.Activity1.ID)
	require.NoError(t, err)
	require.Equal(t, "Another pub", activity.Venue)
	require.Equal(t, testutil.Activity1.Title, activity.Title)
	require.True(t, date.Equal(activity.Date))

	otherCtx := xcontext.WithRequestUsername(ctx, testutil.User2.UserName)
	_, err = mediator.Send[model.EditActivityRequest, mediator.Unit](otherCtx, m, &model.EditActivityRequest{
		ActivityID: testutil.Activity1.ID,
		Venue:      "Hijacked",
	})
	require.True(t, errorx.Is(err, errorx.PermissionDenied))
}

func Test_activityDomain_Attend(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	m := newTestMediator(t, nil)

	_, err := mediator.Send[model.AttendActivityRequest, mediator.Unit](
		ctx, m, &model.AttendActivityRequest{ActivityID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found activity"), err)

	attendances := testutil.Count(ctx, &entity.Attendance{})
	_, err = mediator.Send[model.AttendActivityRequest, mediator.Unit](
		ctx, m, &model.AttendActivityRequest{ActivityID: testutil.Activity1.ID})
	require.NoError(t, err)

	_, err = mediator.Send[model.AttendActivityRequest, mediator.Unit](
		ctx, m, &model.AttendActivityRequest{ActivityID: testutil.Activity1.ID})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))
	require.Equal(t, attendances+1, testutil.Count(ctx, &entity.Attendance{}))

	attendance, err := repository.NewAttendanceRepository().Get(ctx, testutil.User3.ID, testutil.Activity1.ID)
	require.NoError(t, err)
	require.False(t, attendance.IsHost)
}

func Test_activityDomain_Attend_Concurrent(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	m := newTestMediator(t, nil)

	const n = 5
	errs := make([]error, n)
	wg := sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = mediator.Send[model.AttendActivityRequest, mediator.Unit](
				ctx, m, &model.AttendActivityRequest{ActivityID: testutil.Activity2.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.True(t, errorx.Is(err, errorx.AlreadyExists), "got %v", err)
		}
	}
	require.Equal(t, 1, succeeded)

	attendances, err := repository.NewAttendanceRepository().GetListByActivityID(ctx, testutil.Activity2.ID)
	require.NoError(t, err)
	require.Len(t, attendances, 2)
}

func Test_activityDomain_Unattend(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		id       string
		wantErr  error
	}{
		{
			name:     "not found",
			username: testutil.User2.UserName,
			id:       "unknown",
			wantErr:  errorx.New(errorx.NotFound, "Not found activity"),
		},
		{
			name:     "not attending",
			username: testutil.User3.UserName,
			id:       testutil.Activity1.ID,
			wantErr:  errorx.New(errorx.BadRequest, "Not attending the activity"),
		},
		{
			name:     "host",
			username: testutil.User1.UserName,
			id:       testutil.Activity1.ID,
			wantErr:  errorx.New(errorx.BadRequest, "The host cannot leave the activity"),
		},
		{
			name:     "happy case",
			username: testutil.User2.UserName,
			id:       testutil.Activity1.ID,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.CreateFixtureContext()
			ctx = xcontext.WithRequestUsername(ctx, tt.username)
			d := NewActivityDomain(
				repository.NewUserRepository(),
				repository.NewActivityRepository(),
				repository.NewAttendanceRepository(),
			)

			_, err := d.Unattend(ctx, &model.UnattendActivityRequest{ActivityID: tt.id})
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.EqualValues(t, len(testutil.Attendances)-1, testutil.Count(ctx, &entity.Attendance{}))
		})
	}
}

func Test_activityDomain_GetList(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	d := NewActivityDomain(
		repository.NewUserRepository(),
		repository.NewActivityRepository(),
		repository.NewAttendanceRepository(),
	)

	resp, err := d.GetList(ctx, &model.GetActivitiesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Activities, 2)

	first := resp.Activities[0]
	require.Equal(t, testutil.Activity1.ID, first.ID)
	require.Equal(t, testutil.User1.UserName, first.HostUsername)
	require.Equal(t, []model.Profile{
		model.ConvertProfile(testutil.User1),
		model.ConvertProfile(testutil.User2),
	}, first.Attendees)
}
