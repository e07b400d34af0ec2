package model

// Relationship holds one user's accepted friends and the pending
// requests other users have sent them. Exactly one exists per user.
type Relationship struct {
	ID        string      `gorm:"primaryKey" json:"id" bson:"_id"`
	UserID    string      `gorm:"uniqueIndex;not null" json:"userId" bson:"userId"`
	Accepted  StringSlice `json:"accepted" bson:"accepted"`
	Requested StringSlice `json:"requested" bson:"requested"`
}
