package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/pubsub"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetList(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
}

type commentDomain struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	commentRepo  repository.CommentRepository
	publisher    pubsub.Publisher
}

func NewCommentDomain(
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
	commentRepo repository.CommentRepository,
	publisher pubsub.Publisher,
) *commentDomain {
	return &commentDomain{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		commentRepo:  commentRepo,
		publisher:    publisher,
	}
}

// Create persists the comment. Once the transaction is committed, the comment
// is published on the comment bus so that every subscriber of the activity
// receives it.
func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	author, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	node := xcontext.SnowFlake(ctx)
	if node == nil {
		xcontext.Logger(ctx).Errorf("No snowflake node to generate comment id")
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		ID:         node.Generate().Int64(),
		ActivityID: activity.ID,
		AuthorID:   author.ID,
		Body:       req.Body,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		return nil, saveError(ctx, "create comment", err)
	}

	result := model.ConvertComment(comment, author)
	mediator.AfterCommit(ctx, func(ctx context.Context) {
		d.publish(ctx, result)
	})

	resp := model.CreateCommentResponse(result)
	return &resp, nil
}

func (d *commentDomain) GetList(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	activity, err := getActivity(ctx, d.activityRepo, req.ActivityID)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByActivityID(ctx, activity.ID, req.Offset, normalizeLimit(req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
		return nil, errorx.Unknown
	}

	authorSet := map[string]*entity.User{}
	for i := range authors {
		authorSet[authors[i].ID] = &authors[i]
	}

	result := []model.Comment{}
	for i := range comments {
		result = append(result, model.ConvertComment(&comments[i], authorSet[comments[i].AuthorID]))
	}

	return &model.GetCommentsResponse{Comments: result}, nil
}

// publish never fails the request, the comment is already persisted and
// delivery to subscribers is best effort.
func (d *commentDomain) publish(ctx context.Context, comment model.Comment) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(comment)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal comment: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Realtime.Topic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(comment.ActivityID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish comment %d: %v", comment.ID, err)
	}
}
