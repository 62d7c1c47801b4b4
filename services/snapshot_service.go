// services/snapshot_service.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"solpin-escrow/models"
	"solpin-escrow/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// SnapshotService periodically captures the pool accumulators and the
// vault balance, keeping rows locally and archiving the JSON to R2.
type SnapshotService struct {
	Escrow *EscrowService
}

func NewSnapshotService(escrow *EscrowService) *SnapshotService {
	return &SnapshotService{Escrow: escrow}
}

// StartSnapshotScheduler takes a snapshot every hour.
func (s *SnapshotService) StartSnapshotScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if _, err := s.TakeSnapshot(); err != nil {
				log.Printf("[Snapshot] failed: %v", err)
			}
		}),
	)
}

// TakeSnapshot writes one snapshot row and uploads it to the archive.
// An archive failure only logs — the local row is the source of truth.
func (s *SnapshotService) TakeSnapshot() (*models.PoolSnapshot, error) {
	pool, vaultBalance, err := s.Escrow.GetPool()
	if err != nil {
		return nil, err
	}

	snap := &models.PoolSnapshot{
		ID:               uuid.NewString(),
		TotalStaked:      pool.TotalStaked,
		TotalRewardsPaid: pool.TotalRewardsPaid,
		VaultBalance:     vaultBalance,
		TakenAt:          s.Escrow.Clock.Now().UTC(),
	}
	if err := s.Escrow.DB.Create(snap).Error; err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("pool-snapshots/%s.json", snap.TakenAt.Format("2006-01-02T15-04-05Z"))
	if url, err := utils.UploadJSONToR2(key, payload); err != nil {
		log.Printf("[Snapshot] archive upload failed: %v", err)
	} else {
		log.Printf("✅ [Snapshot] archived to %s", url)
	}
	return snap, nil
}
