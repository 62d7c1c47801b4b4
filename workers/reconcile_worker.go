package workers

import (
	"context"
	"errors"
	"log"
	"time"

	"solpin-escrow/models"
	"solpin-escrow/services"

	"gorm.io/gorm"
)

// ReconcileWorker periodically checks the vault invariant: stakes flow
// in, payouts flow out, direct deposits top it up and forfeits move
// nothing, so the vault balance must equal
// total_staked + total_deposited - total_rewards_paid at all times.
// Drift means a bug or out-of-band fund movement; it is logged loudly,
// never auto-corrected.
type ReconcileWorker struct {
	DB *gorm.DB
}

func NewReconcileWorker(db *gorm.DB) *ReconcileWorker {
	return &ReconcileWorker{DB: db}
}

// Run blocks until ctx is cancelled, checking once per interval.
func (w *ReconcileWorker) Run(ctx context.Context, interval time.Duration) {
	log.Println("Starting vault reconciliation worker...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Vault reconciliation stopped.")
			return
		case <-ticker.C:
			balance, expected, err := w.Check()
			if errors.Is(err, services.ErrPoolNotInitialized) {
				// Nothing to reconcile before pool init.
				continue
			}
			if err != nil {
				log.Printf("❌ [Reconcile] check failed: %v", err)
				continue
			}
			if balance != expected {
				log.Printf("❌ [Reconcile] vault drift: balance=%d expected=%d", balance, expected)
				continue
			}
			log.Printf("[Reconcile] vault consistent: balance=%d", balance)
		}
	}
}

// Check returns the live vault balance and the balance the pool
// accumulators imply.
func (w *ReconcileWorker) Check() (balance, expected int64, err error) {
	var pool models.RewardPool
	if err := w.DB.Where("id = ?", models.RewardPoolID).First(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, services.ErrPoolNotInitialized
		}
		return 0, 0, err
	}

	var vault models.CustodyAccount
	if err := w.DB.Where("address = ?", services.VaultAddress).First(&vault).Error; err != nil {
		return 0, 0, err
	}

	expected = pool.TotalStaked + pool.TotalDeposited - pool.TotalRewardsPaid
	return vault.Balance, expected, nil
}
