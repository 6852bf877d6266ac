package entity

type User struct {
	Base
	UserName     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	DisplayName  string
	PasswordHash string `gorm:"not null"`
	Bio          string
}
