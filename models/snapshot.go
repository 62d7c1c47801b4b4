package models

import "time"

// PoolSnapshot is a periodic capture of the pool accumulators and the
// live vault balance, kept as an audit trail and archived off-site.
type PoolSnapshot struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	TotalStaked      int64     `gorm:"not null" json:"total_staked"`
	TotalRewardsPaid int64     `gorm:"not null" json:"total_rewards_paid"`
	VaultBalance     int64     `gorm:"not null" json:"vault_balance"`
	TakenAt          time.Time `gorm:"not null;index" json:"taken_at"`
}
