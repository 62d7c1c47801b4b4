package models

import "time"

// LeaderboardEntry records a successfully claimed session for the
// ranked board. One entry per claim, written in the same transaction
// as the claim itself.
type LeaderboardEntry struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	Player     string     `gorm:"index;not null" json:"player"`
	PlayerSlug string     `gorm:"index;not null" json:"player_slug"`
	Score      int64      `gorm:"index;not null" json:"score"`
	Duration   Duration   `gorm:"not null" json:"duration"`
	Difficulty Difficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	Payout     int64      `gorm:"not null" json:"payout"`
	CreatedAt  time.Time  `json:"created_at"`
}
