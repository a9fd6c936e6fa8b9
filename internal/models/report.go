package models

import "time"

// Report reasons form a fixed enumeration.
const (
	ReportReasonInappropriate = "inappropriate_content"
	ReportReasonSpam          = "spam"
	ReportReasonHarassment    = "harassment"
)

// Report flags a question for moderation. Reports are removed with the
// question they reference.
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	QuestionID  uint      `gorm:"not null;index" json:"question_id"`
	Question    Question  `gorm:"foreignKey:QuestionID" json:"question"`
	Reason      string    `gorm:"size:50;not null" json:"reason"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidReportReason reports whether reason is one of the fixed enumeration values.
func ValidReportReason(reason string) bool {
	switch reason {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonHarassment:
		return true
	}
	return false
}
