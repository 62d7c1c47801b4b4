package services

import (
	"errors"

	"solpin-escrow/models"

	"gorm.io/gorm"
)

// VaultAddress is the reserved custody address holding staked funds in
// escrow pending claim or forfeiture.
const VaultAddress = "vault"

// Ledger is the fund-custody collaborator. Every method takes the
// caller's open transaction handle so that fund movement commits or
// rolls back together with the surrounding state mutation.
type Ledger interface {
	// Transfer moves amount from one account to another, failing with
	// ErrInsufficientFunds when the source cannot cover it.
	Transfer(tx *gorm.DB, from, to string, amount int64) error
	// Balance returns the current balance of an account; a missing
	// account reads as zero.
	Balance(tx *gorm.DB, account string) (int64, error)
	// Credit adds amount to an account, creating it if needed. This is
	// the stand-in for external funding (deposits arrive from outside
	// the escrow core).
	Credit(tx *gorm.DB, account string, amount int64) error
}

// CustodyLedger is the production Ledger over custody_accounts rows.
type CustodyLedger struct{}

func NewCustodyLedger() *CustodyLedger {
	return &CustodyLedger{}
}

func (l *CustodyLedger) Transfer(tx *gorm.DB, from, to string, amount int64) error {
	var src models.CustodyAccount
	if err := tx.Where("address = ?", from).First(&src).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientFunds
		}
		return err
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}
	src.Balance -= amount
	if err := tx.Save(&src).Error; err != nil {
		return err
	}
	return l.Credit(tx, to, amount)
}

func (l *CustodyLedger) Balance(tx *gorm.DB, account string) (int64, error) {
	var acct models.CustodyAccount
	if err := tx.Where("address = ?", account).First(&acct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return acct.Balance, nil
}

func (l *CustodyLedger) Credit(tx *gorm.DB, account string, amount int64) error {
	var acct models.CustodyAccount
	err := tx.Where("address = ?", account).First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.CustodyAccount{Address: account, Balance: amount}).Error
	}
	if err != nil {
		return err
	}
	acct.Balance += amount
	return tx.Save(&acct).Error
}
