package model

import "time"

type Comment struct {
	ID        string `gorm:"primaryKey" json:"id" bson:"_id"`
	Text      string `gorm:"not null" json:"text" bson:"text"`
	ArticleID string `gorm:"index;not null" json:"articleId" bson:"articleId"`
	UserID    string `gorm:"not null" json:"userId" bson:"userId"`
	Date      string `json:"date" bson:"date"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
