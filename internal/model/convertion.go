package model

import "github.com/atoz-lab/backend/internal/entity"

func ConvertUser(u *entity.User, token string) User {
	if u == nil {
		return User{}
	}

	return User{
		Username:    u.UserName,
		DisplayName: u.DisplayName,
		Image:       nil,
		Token:       token,
	}
}

func ConvertProfile(u *entity.User) Profile {
	if u == nil {
		return Profile{}
	}

	return Profile{
		Username:    u.UserName,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Image:       nil,
	}
}

func ConvertActivity(a *entity.Activity, hostUsername string, attendees []Profile) Activity {
	if a == nil {
		return Activity{}
	}

	if attendees == nil {
		attendees = []Profile{}
	}

	return Activity{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Date:         a.Date,
		Category:     a.Category,
		City:         a.City,
		Venue:        a.Venue,
		HostUsername: hostUsername,
		Attendees:    attendees,
	}
}

func ConvertComment(c *entity.Comment, author *entity.User) Comment {
	if c == nil {
		return Comment{}
	}

	comment := Comment{
		ID:         c.ID,
		ActivityID: c.ActivityID,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}

	if author != nil {
		comment.Username = author.UserName
		comment.DisplayName = author.DisplayName
	}

	return comment
}
