package entity

import "time"

// Attendance links a user to an activity. The composite primary key makes a
// second attendance of the same pair a duplicate key error.
type Attendance struct {
	UserID string `gorm:"primaryKey"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	ActivityID string    `gorm:"primaryKey"`
	Activity   *Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`

	IsHost     bool
	DateJoined time.Time
}
