package models

import "time"

// RewardPoolID is the fixed primary key of the singleton pool row.
const RewardPoolID = "reward_pool"

// RewardPool holds the deployment-wide escrow accumulators. Exactly one
// row exists; both totals only ever grow. Payouts are bounded by the
// vault balance at claim time, not by these counters.
type RewardPool struct {
	ID               string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Authority        string    `gorm:"not null" json:"authority"`
	TotalStaked      int64     `gorm:"not null;default:0" json:"total_staked"`
	TotalRewardsPaid int64     `gorm:"not null;default:0" json:"total_rewards_paid"`
	// Direct external credits to the vault (bonus funding on top of
	// stakes). Needed to reconcile the vault balance: at all times
	// vault = TotalStaked + TotalDeposited - TotalRewardsPaid.
	TotalDeposited int64 `gorm:"not null;default:0" json:"total_deposited"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
