package model

import "github.com/atoz-lab/backend/internal/mediator"

type CreateCommentRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
	Body       string `json:"body" validate:"required,notblank,max=1000"`
}

func (CreateCommentRequest) Kind() mediator.Kind { return CreateCommentKind }

type CreateCommentResponse Comment

type GetCommentsRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

func (GetCommentsRequest) Kind() mediator.Kind { return GetCommentsKind }

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}
