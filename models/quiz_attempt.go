package models

import "time"

// QuizAttempt records one graded section quiz or mock exam submission.
type QuizAttempt struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Kind      string `json:"kind" gorm:"index;not null"`      // section-quiz, mock-exam
	Reference string `json:"reference" gorm:"index;not null"` // course/section or exam id

	Correct    int  `json:"correct"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
}

// TableName sets the table name explicitly.
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
