package entity

import "time"

type Activity struct {
	Base
	Title       string `gorm:"not null"`
	Description string
	Date        time.Time `gorm:"index"`
	Category    string
	City        string
	Venue       string

	CreatedBy string `gorm:"not null"`
	Creator   *User  `gorm:"foreignKey:CreatedBy"`
}
