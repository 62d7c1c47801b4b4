package services

import (
	"errors"
	"math"
	"sync"

	"solpin-escrow/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// EscrowService orchestrates the escrow lifecycle: pool initialization,
// staking, claiming and forfeiting. Each operation runs as one database
// transaction so the custody movement, the session transition and the
// pool accumulators commit or roll back together.
//
// There is no serialized host here, so mutual exclusion is done
// in-process: one mutex per session plus one pool mutex, always
// acquired session-then-pool.
type EscrowService struct {
	DB     *gorm.DB
	Ledger Ledger
	Clock  clockwork.Clock

	Verifier *PayloadVerifier

	mu           sync.Mutex // guards sessionLocks
	sessionLocks map[string]*sync.Mutex
	poolMu       sync.Mutex
}

func NewEscrowService(db *gorm.DB, ledger Ledger, clock clockwork.Clock) *EscrowService {
	return &EscrowService{
		DB:           db,
		Ledger:       ledger,
		Clock:        clock,
		Verifier:     NewPayloadVerifier(clock),
		sessionLocks: make(map[string]*sync.Mutex),
	}
}

func (s *EscrowService) lockSession(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessionLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.sessionLocks[id] = lock
	}
	return lock
}

// releaseSession drops a session's lock entry once the session is
// terminal. A late caller racing the delete gets a fresh mutex, which
// is safe: the transaction re-reads the terminal status and fails the
// call before touching anything.
func (s *EscrowService) releaseSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessionLocks, id)
}

// InitializePool creates the singleton reward pool with zeroed
// accumulators and records the caller as its authority. Repeat calls
// fail with ErrPoolExists — initialization is deliberately not
// idempotent.
func (s *EscrowService) InitializePool(authority string) (*models.RewardPool, error) {
	s.poolMu.Lock()
	defer s.poolMu.Unlock()

	pool := &models.RewardPool{
		ID:        models.RewardPoolID,
		Authority: authority,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.RewardPool
		err := tx.Where("id = ?", models.RewardPoolID).First(&existing).Error
		if err == nil {
			return ErrPoolExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(pool).Error; err != nil {
			return err
		}
		var vault models.CustodyAccount
		return tx.FirstOrCreate(&vault, models.CustodyAccount{Address: VaultAddress}).Error
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// Stake opens a new escrow position: funds move owner→vault, an active
// session is created stamped at the current instant, and the pool's
// staked total grows. A failed custody transfer aborts everything.
func (s *EscrowService) Stake(owner string, amount int64, duration models.Duration, difficulty models.Difficulty) (*models.StakeSession, error) {
	if !duration.Valid() {
		return nil, ErrInvalidDuration
	}
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.poolMu.Lock()
	defer s.poolMu.Unlock()

	session := &models.StakeSession{
		ID:         uuid.NewString(),
		Owner:      owner,
		Amount:     amount,
		Duration:   duration,
		Difficulty: difficulty,
		Status:     models.SessionActive,
		OpenedAt:   s.Clock.Now().UTC(),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pool models.RewardPool
		if err := tx.Where("id = ?", models.RewardPoolID).First(&pool).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPoolNotInitialized
			}
			return err
		}
		if err := s.Ledger.Transfer(tx, owner, VaultAddress, amount); err != nil {
			return err
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		pool.TotalStaked += amount
		return tx.Save(&pool).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ClaimReward settles a winning session. Checks run in a fixed order:
// terminal-state, ownership, payload freshness, payload digest. The
// payout is floor(amount × multiplier) capped at whatever the vault
// holds right now — an under-funded vault pays its remaining balance
// instead of failing. Returns the actual payout.
func (s *EscrowService) ClaimReward(sessionID, caller string, score, gameTimestamp int64, payloadHash string) (int64, error) {
	lock := s.lockSession(sessionID)
	lock.Lock()
	defer lock.Unlock()
	s.poolMu.Lock()
	defer s.poolMu.Unlock()

	var payout int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.StakeSession
		if err := tx.Where("id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		switch session.Status {
		case models.SessionClaimed:
			return ErrAlreadyClaimed
		case models.SessionForfeited:
			return ErrAlreadyForfeited
		}
		if session.Owner != caller {
			return ErrUnauthorized
		}
		if err := s.Verifier.Verify(score, gameTimestamp, payloadHash, session.Duration, session.Difficulty); err != nil {
			return err
		}

		multiplier := Multiplier(session.Duration, session.Difficulty)
		payout = int64(math.Floor(float64(session.Amount) * multiplier))
		vaultBalance, err := s.Ledger.Balance(tx, VaultAddress)
		if err != nil {
			return err
		}
		if vaultBalance < payout {
			payout = vaultBalance
		}

		if err := s.Ledger.Transfer(tx, VaultAddress, session.Owner, payout); err != nil {
			return err
		}

		session.Status = models.SessionClaimed
		session.ClaimedScore = score
		session.PaidOut = payout
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		var pool models.RewardPool
		if err := tx.Where("id = ?", models.RewardPoolID).First(&pool).Error; err != nil {
			return err
		}
		pool.TotalRewardsPaid += payout
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}

		return NewLeaderboardService(s.DB).RecordClaim(tx, &session)
	})
	if err != nil {
		return 0, err
	}
	s.releaseSession(sessionID)
	return payout, nil
}

// Forfeit marks a session as lost. No funds move — the stake stays in
// the vault, growing the shared pool's backing. The staked total
// already counted this amount at stake time, so no accumulator changes.
func (s *EscrowService) Forfeit(sessionID, caller string) error {
	lock := s.lockSession(sessionID)
	lock.Lock()
	defer lock.Unlock()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.StakeSession
		if err := tx.Where("id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		switch session.Status {
		case models.SessionClaimed:
			return ErrAlreadyClaimed
		case models.SessionForfeited:
			return ErrAlreadyForfeited
		}
		if session.Owner != caller {
			return ErrUnauthorized
		}
		session.Status = models.SessionForfeited
		return tx.Save(&session).Error
	})
	if err != nil {
		return err
	}
	s.releaseSession(sessionID)
	return nil
}

// Deposit credits external funds to a custody account. This is the
// admin stand-in for the funding rails that live outside the escrow
// core. A credit to the vault itself is bonus funding and is counted
// in the pool's TotalDeposited so reconciliation stays exact.
func (s *EscrowService) Deposit(account string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if account != VaultAddress {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			return s.Ledger.Credit(tx, account, amount)
		})
	}

	s.poolMu.Lock()
	defer s.poolMu.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var pool models.RewardPool
		if err := tx.Where("id = ?", models.RewardPoolID).First(&pool).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPoolNotInitialized
			}
			return err
		}
		if err := s.Ledger.Credit(tx, VaultAddress, amount); err != nil {
			return err
		}
		pool.TotalDeposited += amount
		return tx.Save(&pool).Error
	})
}

// GetPool returns the pool row together with the live vault balance.
func (s *EscrowService) GetPool() (*models.RewardPool, int64, error) {
	var pool models.RewardPool
	if err := s.DB.Where("id = ?", models.RewardPoolID).First(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPoolNotInitialized
		}
		return nil, 0, err
	}
	vaultBalance, err := s.Ledger.Balance(s.DB, VaultAddress)
	if err != nil {
		return nil, 0, err
	}
	return &pool, vaultBalance, nil
}

func (s *EscrowService) GetSession(id string) (*models.StakeSession, error) {
	var session models.StakeSession
	if err := s.DB.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *EscrowService) ListSessions(owner string) ([]models.StakeSession, error) {
	var sessions []models.StakeSession
	err := s.DB.Where("owner = ?", owner).
		Order("opened_at DESC").
		Find(&sessions).Error
	return sessions, err
}
