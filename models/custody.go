package models

import "time"

// CustodyAccount is one fund-custody record. The escrow vault is the
// account with the reserved address "vault" (services.VaultAddress);
// every other row mirrors a player's spendable balance.
type CustodyAccount struct {
	Address   string    `gorm:"primaryKey;type:varchar(128)" json:"address"`
	Balance   int64     `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
