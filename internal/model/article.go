package model

import "time"

type Article struct {
	ID         string      `gorm:"primaryKey" json:"id" bson:"_id"`
	Title      string      `gorm:"not null" json:"title" bson:"title"`
	Content    string      `gorm:"not null" json:"content" bson:"content"`
	UserID     string      `gorm:"index;not null" json:"userId" bson:"userId"`
	AuthorName string      `json:"authorName" bson:"authorName"`
	Likes      int         `gorm:"default:0" json:"likes" bson:"likes"`
	LikesUsers StringSlice `json:"likesUsers" bson:"likesUsers"`
	Date       string      `json:"date" bson:"date"` // Client supplied, kept as-is

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
