package models

import "time"

// Duration is the staked game length in seconds.
type Duration int16

const (
	DurationShort  Duration = 30
	DurationMedium Duration = 60
	DurationLong   Duration = 90
)

func (d Duration) Valid() bool {
	return d == DurationShort || d == DurationMedium || d == DurationLong
}

// Difficulty of the staked game session.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Index returns the wire index of the difficulty (easy=0, medium=1, hard=2).
// The anti-cheat digest serializes difficulty as this index, not as text.
func (d Difficulty) Index() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	}
	return -1
}

// SessionStatus is the lifecycle state of a stake session.
// A session leaves "active" exactly once and never leaves a terminal state.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionClaimed   SessionStatus = "claimed"
	SessionForfeited SessionStatus = "forfeited"
)

// Terminal reports whether no further transition is permitted.
func (s SessionStatus) Terminal() bool {
	return s == SessionClaimed || s == SessionForfeited
}

// StakeSession is one escrow position for a single game attempt.
// Owner, Amount, Duration, Difficulty and OpenedAt are immutable after
// creation; only Status (plus the claim audit fields) ever changes.
// Sessions are never deleted — a terminal row is the audit record.
type StakeSession struct {
	ID         string        `gorm:"primaryKey;type:uuid" json:"id"`
	Owner      string        `gorm:"index;not null" json:"owner"`
	Amount     int64         `gorm:"not null" json:"amount"` // smallest currency unit
	Duration   Duration      `gorm:"not null" json:"duration"`
	Difficulty Difficulty    `gorm:"type:varchar(16);not null" json:"difficulty"`
	Status     SessionStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	OpenedAt   time.Time     `gorm:"not null" json:"opened_at"`

	// Set when the session is claimed; zero otherwise.
	ClaimedScore int64 `json:"claimed_score"`
	PaidOut      int64 `json:"paid_out"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
