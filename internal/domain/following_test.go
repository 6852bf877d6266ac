package domain

import (
	"testing"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/testutil"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_followingDomain_Follow(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		target   string
		wantErr  error
	}{
		{
			name:     "target not found",
			username: testutil.User1.UserName,
			target:   "ghost",
			wantErr:  errorx.New(errorx.NotFound, "Not found user"),
		},
		{
			name:     "follow yourself",
			username: testutil.User1.UserName,
			target:   testutil.User1.UserName,
			wantErr:  errorx.New(errorx.BadRequest, "Cannot follow yourself"),
		},
		{
			name:     "already following",
			username: testutil.User2.UserName,
			target:   testutil.User1.UserName,
			wantErr:  errorx.New(errorx.AlreadyExists, "Already following the user"),
		},
		{
			name:     "happy case",
			username: testutil.User3.UserName,
			target:   testutil.User1.UserName,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.CreateFixtureContext()
			ctx = xcontext.WithRequestUsername(ctx, tt.username)
			m := newTestMediator(t, nil)

			_, err := mediator.Send[model.FollowUserRequest, mediator.Unit](
				ctx, m, &model.FollowUserRequest{Username: tt.target})
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				require.EqualValues(t, len(testutil.Followings), testutil.Count(ctx, &entity.Following{}))
				return
			}

			require.NoError(t, err)
			require.EqualValues(t, len(testutil.Followings)+1, testutil.Count(ctx, &entity.Following{}))
		})
	}
}

func Test_followingDomain_FollowTwice(t *testing.T) {
	ctx := testutil.MockContext()
	observer, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	target, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	ctx = xcontext.WithRequestUsername(ctx, observer.UserName)
	m := newTestMediator(t, nil)
	req := &model.FollowUserRequest{Username: target.UserName}

	_, err = mediator.Send[model.FollowUserRequest, mediator.Unit](ctx, m, req)
	require.NoError(t, err)

	_, err = mediator.Send[model.FollowUserRequest, mediator.Unit](ctx, m, req)
	require.True(t, errorx.Is(err, errorx.AlreadyExists))
	require.EqualValues(t, 1, testutil.Count(ctx, &entity.Following{}))
}

func Test_followingDomain_Unfollow(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	m := newTestMediator(t, nil)

	// User3 does not follow anyone.
	ctx3 := xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	_, err := mediator.Send[model.UnfollowUserRequest, mediator.Unit](
		ctx3, m, &model.UnfollowUserRequest{Username: testutil.User1.UserName})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not following the user"), err)

	_, err = mediator.Send[model.UnfollowUserRequest, mediator.Unit](
		ctx3, m, &model.UnfollowUserRequest{Username: "ghost"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)

	_, err = mediator.Send[model.FollowUserRequest, mediator.Unit](
		ctx3, m, &model.FollowUserRequest{Username: testutil.User2.UserName})
	require.NoError(t, err)

	_, err = mediator.Send[model.UnfollowUserRequest, mediator.Unit](
		ctx3, m, &model.UnfollowUserRequest{Username: testutil.User2.UserName})
	require.NoError(t, err)

	_, err = mediator.Send[model.UnfollowUserRequest, mediator.Unit](
		ctx3, m, &model.UnfollowUserRequest{Username: testutil.User2.UserName})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	require.EqualValues(t, len(testutil.Followings), testutil.Count(ctx, &entity.Following{}))
}

func Test_followingDomain_GetList(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User3.UserName)
	m := newTestMediator(t, nil)

	resp, err := mediator.Send[model.GetFollowingsRequest, model.GetFollowingsResponse](
		ctx, m, &model.GetFollowingsRequest{Username: testutil.User1.UserName, Predicate: model.FollowersPredicate})
	require.NoError(t, err)
	require.Equal(t, []model.Profile{model.ConvertProfile(testutil.User2)}, resp.Profiles)

	resp, err = mediator.Send[model.GetFollowingsRequest, model.GetFollowingsResponse](
		ctx, m, &model.GetFollowingsRequest{Username: testutil.User2.UserName, Predicate: model.FollowingPredicate})
	require.NoError(t, err)
	require.Equal(t, []model.Profile{model.ConvertProfile(testutil.User1)}, resp.Profiles)

	resp, err = mediator.Send[model.GetFollowingsRequest, model.GetFollowingsResponse](
		ctx, m, &model.GetFollowingsRequest{Username: testutil.User1.UserName, Predicate: model.FollowingPredicate})
	require.NoError(t, err)
	require.Empty(t, resp.Profiles)

	_, err = mediator.Send[model.GetFollowingsRequest, model.GetFollowingsResponse](
		ctx, m, &model.GetFollowingsRequest{Username: testutil.User1.UserName, Predicate: "friends"})
	require.True(t, errorx.Is(err, errorx.Validation))
}
