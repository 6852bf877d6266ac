package entity

import "time"

type Comment struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false"`

	ActivityID string    `gorm:"index;not null"`
	Activity   *Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`

	AuthorID string `gorm:"not null"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	Body      string `gorm:"not null"`
	CreatedAt time.Time
}
