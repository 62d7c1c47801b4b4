package services

import (
	"testing"
	"time"

	"solpin-escrow/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	lb := NewLeaderboardService(db)

	sessions := []*models.StakeSession{
		{Owner: "Player One", ClaimedScore: 500, Duration: models.DurationShort, Difficulty: models.DifficultyEasy, PaidOut: 120},
		{Owner: "player-two", ClaimedScore: 900, Duration: models.DurationLong, Difficulty: models.DifficultyHard, PaidOut: 250},
		{Owner: "player-three", ClaimedScore: 700, Duration: models.DurationMedium, Difficulty: models.DifficultyMedium, PaidOut: 180},
	}
	for _, session := range sessions {
		require.NoError(t, lb.RecordClaim(db, session))
	}

	entries, err := lb.Top(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(900), entries[0].Score)
	assert.Equal(t, int64(700), entries[1].Score)
	assert.Equal(t, int64(500), entries[2].Score)
}

func TestLeaderboardTopLimit(t *testing.T) {
	db := newTestDB(t)
	lb := NewLeaderboardService(db)

	for i := int64(0); i < 5; i++ {
		require.NoError(t, lb.RecordClaim(db, &models.StakeSession{
			Owner:        "alice",
			ClaimedScore: i * 100,
			Duration:     models.DurationShort,
			Difficulty:   models.DifficultyEasy,
		}))
	}

	entries, err := lb.Top(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Out-of-range limits fall back to the default.
	entries, err = lb.Top(-1)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestLeaderboardPlayerSlug(t *testing.T) {
	db := newTestDB(t)
	lb := NewLeaderboardService(db)

	require.NoError(t, lb.RecordClaim(db, &models.StakeSession{
		Owner:        "Player One",
		ClaimedScore: 500,
		Duration:     models.DurationShort,
		Difficulty:   models.DifficultyEasy,
	}))

	entries, err := lb.PlayerEntries("player-one")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Player One", entries[0].Player)
	assert.Equal(t, "player-one", entries[0].PlayerSlug)
}

func TestTakeSnapshotRecordsPoolState(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	escrow := NewEscrowService(newTestDB(t), NewCustodyLedger(), clock)
	_, err := escrow.InitializePool("admin")
	require.NoError(t, err)
	require.NoError(t, escrow.Deposit("alice", 1000))
	_, err = escrow.Stake("alice", 1000, models.DurationShort, models.DifficultyEasy)
	require.NoError(t, err)

	snap, err := NewSnapshotService(escrow).TakeSnapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), snap.TotalStaked)
	assert.Zero(t, snap.TotalRewardsPaid)
	assert.Equal(t, int64(1000), snap.VaultBalance)
	assert.Equal(t, clock.Now().UTC(), snap.TakenAt)

	var count int64
	require.NoError(t, escrow.DB.Model(&models.PoolSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
