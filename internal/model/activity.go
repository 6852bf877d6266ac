package model

import (
	"time"

	"github.com/atoz-lab/backend/internal/mediator"
)

type CreateActivityRequest struct {
	Title       string    `json:"title" validate:"required,notblank,max=128"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
}

func (CreateActivityRequest) Kind() mediator.Kind { return CreateActivityKind }

type CreateActivityResponse struct {
	ID string `json:"id"`
}

type EditActivityRequest struct {
	ActivityID  string     `json:"activity_id" validate:"required"`
	Title       string     `json:"title" validate:"omitempty,notblank,max=128"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Category    string     `json:"category"`
	City        string     `json:"city"`
	Venue       string     `json:"venue"`
}

func (EditActivityRequest) Kind() mediator.Kind { return EditActivityKind }

type DeleteActivityRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
}

func (DeleteActivityRequest) Kind() mediator.Kind { return DeleteActivityKind }

type GetActivityRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
}

func (GetActivityRequest) Kind() mediator.Kind { return GetActivityKind }

type GetActivityResponse Activity

type GetActivitiesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

func (GetActivitiesRequest) Kind() mediator.Kind { return GetActivitiesKind }

type GetActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}

type AttendActivityRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
}

func (AttendActivityRequest) Kind() mediator.Kind { return AttendActivityKind }

type UnattendActivityRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
}

func (UnattendActivityRequest) Kind() mediator.Kind { return UnattendActivityKind }
