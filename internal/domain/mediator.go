package domain

import (
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
)

// NewMediator binds every request kind of the service to its handler.
func NewMediator(
	userDomain UserDomain,
	activityDomain ActivityDomain,
	followingDomain FollowingDomain,
	commentDomain CommentDomain,
) (*mediator.Mediator, error) {
	m := mediator.New(model.RequestKinds()...)

	mediator.RegisterCommand(m, userDomain.Register)
	mediator.RegisterQuery(m, userDomain.Login)
	mediator.RegisterQuery(m, userDomain.GetCurrentUser)

	mediator.RegisterCommand(m, activityDomain.Create)
	mediator.RegisterCommand(m, activityDomain.Edit)
	mediator.RegisterCommand(m, activityDomain.Delete)
	mediator.RegisterQuery(m, activityDomain.Get)
	mediator.RegisterQuery(m, activityDomain.GetList)
	mediator.RegisterCommand(m, activityDomain.Attend)
	mediator.RegisterCommand(m, activityDomain.Unattend)

	mediator.RegisterCommand(m, followingDomain.Follow)
	mediator.RegisterCommand(m, followingDomain.Unfollow)
	mediator.RegisterQuery(m, followingDomain.GetList)

	mediator.RegisterCommand(m, commentDomain.Create)
	mediator.RegisterQuery(m, commentDomain.GetList)

	if err := m.Seal(); err != nil {
		return nil, err
	}

	return m, nil
}
