package model

import "time"

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type User struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Image       *string `json:"image"`
	Token       string  `json:"token"`
}

type Profile struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Bio         string  `json:"bio"`
	Image       *string `json:"image"`
}

type Activity struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Category     string    `json:"category"`
	City         string    `json:"city"`
	Venue        string    `json:"venue"`
	HostUsername string    `json:"host_username"`
	Attendees    []Profile `json:"attendees"`
}

type Comment struct {
	ID          int64     `json:"id"`
	ActivityID  string    `json:"activity_id"`
	Body        string    `json:"body"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
