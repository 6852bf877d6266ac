package entity

import "time"

// Following is a directed edge, the observer follows the target.
type Following struct {
	ObserverID string `gorm:"primaryKey"`
	Observer   *User  `gorm:"foreignKey:ObserverID;constraint:OnDelete:CASCADE"`

	TargetID string `gorm:"primaryKey"`
	Target   *User  `gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}
