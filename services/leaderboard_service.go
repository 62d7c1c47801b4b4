package services

import (
	"solpin-escrow/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// LeaderboardService maintains the off-chain claim index: one entry per
// successfully claimed session, ranked by score.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// RecordClaim writes the board entry for a freshly claimed session.
// It runs on the claim's own transaction handle so a rolled-back claim
// never leaves an entry behind.
func (s *LeaderboardService) RecordClaim(tx *gorm.DB, session *models.StakeSession) error {
	entry := models.LeaderboardEntry{
		ID:         uuid.NewString(),
		Player:     session.Owner,
		PlayerSlug: slug.Make(session.Owner),
		Score:      session.ClaimedScore,
		Duration:   session.Duration,
		Difficulty: session.Difficulty,
		Payout:     session.PaidOut,
	}
	return tx.Create(&entry).Error
}

// Top returns the highest-scoring entries, best first.
func (s *LeaderboardService) Top(limit int) ([]models.LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var entries []models.LeaderboardEntry
	err := s.DB.Order("score DESC, created_at ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// PlayerEntries returns one player's claims by slug, best first.
func (s *LeaderboardService) PlayerEntries(playerSlug string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.DB.Where("player_slug = ?", playerSlug).
		Order("score DESC").
		Find(&entries).Error
	return entries, err
}
