package model

import (
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/pkg/enum"
)

var (
	RegisterKind         = enum.New(mediator.Kind("register"), "register")
	LoginKind            = enum.New(mediator.Kind("login"), "login")
	GetCurrentUserKind   = enum.New(mediator.Kind("get_current_user"), "get_current_user")
	CreateActivityKind   = enum.New(mediator.Kind("create_activity"), "create_activity")
	EditActivityKind     = enum.New(mediator.Kind("edit_activity"), "edit_activity")
	DeleteActivityKind   = enum.New(mediator.Kind("delete_activity"), "delete_activity")
	GetActivityKind      = enum.New(mediator.Kind("get_activity"), "get_activity")
	GetActivitiesKind    = enum.New(mediator.Kind("get_activities"), "get_activities")
	AttendActivityKind   = enum.New(mediator.Kind("attend_activity"), "attend_activity")
	UnattendActivityKind = enum.New(mediator.Kind("unattend_activity"), "unattend_activity")
	FollowUserKind       = enum.New(mediator.Kind("follow_user"), "follow_user")
	UnfollowUserKind     = enum.New(mediator.Kind("unfollow_user"), "unfollow_user")
	GetFollowingsKind    = enum.New(mediator.Kind("get_followings"), "get_followings")
	CreateCommentKind    = enum.New(mediator.Kind("create_comment"), "create_comment")
	GetCommentsKind      = enum.New(mediator.Kind("get_comments"), "get_comments")
)

// RequestKinds returns every kind a mediator of this service must serve.
func RequestKinds() []mediator.Kind {
	return enum.Values[mediator.Kind]()
}
