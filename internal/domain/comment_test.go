package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/testutil"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_commentDomain_Create(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User2.UserName)
	publisher := &recordPublisher{}
	m := newTestMediator(t, publisher)

	resp, err := mediator.Send[model.CreateCommentRequest, model.CreateCommentResponse](
		ctx, m, &model.CreateCommentRequest{ActivityID: testutil.Activity1.ID, Body: "See you there"})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, testutil.User2.UserName, resp.Username)
	require.Equal(t, testutil.User2.DisplayName, resp.DisplayName)

	packs := publisher.Packs()
	require.Len(t, packs, 1)
	require.Equal(t, testutil.Activity1.ID, string(packs[0].Key))

	var published model.Comment
	require.NoError(t, json.Unmarshal(packs[0].Msg, &published))
	require.Equal(t, resp.ID, published.ID)
	require.Equal(t, "See you there", published.Body)

	list, err := mediator.Send[model.GetCommentsRequest, model.GetCommentsResponse](
		ctx, m, &model.GetCommentsRequest{ActivityID: testutil.Activity1.ID})
	require.NoError(t, err)
	require.Len(t, list.Comments, 1)
	require.Equal(t, resp.ID, list.Comments[0].ID)
	require.Equal(t, resp.Body, list.Comments[0].Body)
	require.Equal(t, resp.Username, list.Comments[0].Username)
	require.True(t, resp.CreatedAt.Equal(list.Comments[0].CreatedAt))
}

func Test_commentDomain_Create_Failed(t *testing.T) {
	testCases := []struct {
		name    string
		req     *model.CreateCommentRequest
		wantErr errorx.Code
	}{
		{
			name:    "activity not found",
			req:     &model.CreateCommentRequest{ActivityID: "unknown", Body: "Hello"},
			wantErr: errorx.NotFound,
		},
		{
			name:    "empty body",
			req:     &model.CreateCommentRequest{ActivityID: testutil.Activity1.ID},
			wantErr: errorx.Validation,
		},
		{
			name:    "blank body",
			req:     &model.CreateCommentRequest{ActivityID: testutil.Activity1.ID, Body: " \n\t"},
			wantErr: errorx.Validation,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.CreateFixtureContext()
			ctx = xcontext.WithRequestUsername(ctx, testutil.User2.UserName)
			publisher := &recordPublisher{}
			m := newTestMediator(t, publisher)

			_, err := mediator.Send[model.CreateCommentRequest, model.CreateCommentResponse](ctx, m, tt.req)
			require.True(t, errorx.Is(err, tt.wantErr), "got %v", err)
			require.Empty(t, publisher.Packs())
			require.Zero(t, testutil.Count(ctx, &entity.Comment{}))
		})
	}
}

type failedPublisher struct{}

func (failedPublisher) Publish(context.Context, string, *pubsub.Pack) error {
	return errors.New("bus is down")
}

func Test_commentDomain_Create_PublishFailure(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	ctx = xcontext.WithRequestUsername(ctx, testutil.User2.UserName)
	m := newTestMediator(t, failedPublisher{})

	resp, err := mediator.Send[model.CreateCommentRequest, model.CreateCommentResponse](
		ctx, m, &model.CreateCommentRequest{ActivityID: testutil.Activity1.ID, Body: "Still saved"})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.EqualValues(t, 1, testutil.Count(ctx, &entity.Comment{}))
}
