package models

import "time"

// Comment belongs to exactly one question and is removed with it.
// Name is the denormalized author label shown in exports; UserID is the
// authoritative authorship reference used for scoring.
type Comment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	User       User   `gorm:"foreignKey:UserID" json:"user"`
	Name       string `gorm:"size:1000;not null" json:"name"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Likes      []User `gorm:"many2many:comment_likes" json:"-"`
	// LikesCount is not persisted; computed at query time
	LikesCount int       `gorm:"->" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}
