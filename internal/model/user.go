// Package model defines database models
package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id" bson:"_id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email" bson:"email"`
	PasswordHash string `gorm:"not null" json:"-" bson:"password"`
	FirstName    string `json:"firstName" bson:"firstName"`
	LastName     string `json:"lastName" bson:"lastName"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Photo        string `json:"photo,omitempty" bson:"photo,omitempty"`
	Friends      string `json:"friends,omitempty" bson:"friends,omitempty"` // ID of the user's Relationship record

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
