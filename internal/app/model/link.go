package model

import "time"

// Link pairs an auto-assigned numeric id with the URL it was created for.
type Link struct {
	ShortID int64  `json:"short_id" gorm:"column:short_id;primaryKey;autoIncrement"`
	FullURL string `json:"full_url" gorm:"column:full_url;type:text;not null"`
}

// TableName pins the table name regardless of GORM naming strategy.
func (Link) TableName() string {
	return "links"
}

// LinkCreatedEvent is published after a link has been stored.
type LinkCreatedEvent struct {
	ID        string    `json:"id"`
	ShortID   int64     `json:"short_id"`
	FullURL   string    `json:"full_url"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	LinkStreamName     = "LINKS"
	LinkCreatedSubject = "links.created"
	LinkStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
