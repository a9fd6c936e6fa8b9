package models

import "time"

// Question is a user-authored post with optional category and tags.
// A question's tags are restricted to its category's tag set at
// creation/update time; the data layer does not re-enforce this.
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []Tag     `gorm:"many2many:question_tags" json:"tags,omitempty"`
	Likes      []User    `gorm:"many2many:question_likes" json:"-"`
	Comments   []Comment `gorm:"foreignKey:QuestionID" json:"comments,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this question (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
