// Package models contains data structures for the application's domain models.
package models

import "time"

// User mirrors an account owned by the external identity provider. Rows are
// provisioned out of band (seeding or identity sync); this service never
// creates credentials.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the per-user presentation data and the derived activity score.
// Score is never incremented in place; it is always recomputed from current
// counts, so a stale value is repaired by the next scoring event.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Bio       string    `gorm:"size:1000" json:"bio"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Image     string    `json:"image"`
	Score     uint      `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
