package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"solpin-escrow/models"
	"solpin-escrow/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.RewardPool{},
		&models.StakeSession{},
		&models.CustodyAccount{},
		&models.LeaderboardEntry{},
		&models.PoolSnapshot{},
	))

	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	escrowService := services.NewEscrowService(db, services.NewCustodyLedger(), clock)
	leaderboardService := services.NewLeaderboardService(db)

	// Same registration order as main.go: public leaderboard reads
	// first, then the escrow routes with their secured group.
	app := fiber.New()
	SetupLeaderboardRoutes(app, leaderboardService)
	SetupEscrowRoutes(app, escrowService)
	return app
}

func TestLeaderboardReadableWithoutUserContext(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/leaderboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/leaderboard/player-one", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPoolReadableWithoutUserContext(t *testing.T) {
	app := newTestApp(t)

	// No user header needed; uninitialized pool reads as 404, not 401.
	resp, err := app.Test(httptest.NewRequest("GET", "/pool", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStakeRequiresUserContext(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/stake", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
