// handlers/escrow_routes.go
package handlers

import (
	"errors"

	"solpin-escrow/middleware"
	"solpin-escrow/models"
	"solpin-escrow/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEscrowRoutes(app *fiber.App, escrowService *services.EscrowService) {
	// Pool stats are readable by anything behind the gateway.
	app.Get("/pool", func(c *fiber.Ctx) error {
		pool, vaultBalance, err := escrowService.GetPool()
		if err != nil {
			return escrowError(c, err)
		}
		return c.JSON(fiber.Map{
			"authority":          pool.Authority,
			"total_staked":       pool.TotalStaked,
			"total_rewards_paid": pool.TotalRewardsPaid,
			"total_deposited":    pool.TotalDeposited,
			"vault_balance":      vaultBalance,
		})
	})

	// 🔐 Secured routes — require user context from the gateway.
	// The group sits on "/" so it also captures any route registered
	// after this call; public routes must be registered before it.
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Post("/stake", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Amount     int64  `json:"amount"`
			Duration   int16  `json:"duration"`
			Difficulty string `json:"difficulty"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		session, err := escrowService.Stake(
			userID,
			req.Amount,
			models.Duration(req.Duration),
			models.Difficulty(req.Difficulty),
		)
		if err != nil {
			return escrowError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(session)
	})

	securedGroup.Post("/stake/:id/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Score         int64  `json:"score"`
			GameTimestamp int64  `json:"game_timestamp"`
			PayloadHash   string `json:"payload_hash"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		payout, err := escrowService.ClaimReward(c.Params("id"), userID, req.Score, req.GameTimestamp, req.PayloadHash)
		if err != nil {
			return escrowError(c, err)
		}
		return c.JSON(fiber.Map{
			"session_id": c.Params("id"),
			"payout":     payout,
		})
	})

	securedGroup.Post("/stake/:id/forfeit", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := escrowService.Forfeit(c.Params("id"), userID); err != nil {
			return escrowError(c, err)
		}
		return c.JSON(fiber.Map{
			"session_id": c.Params("id"),
			"status":     models.SessionForfeited,
		})
	})

	securedGroup.Get("/stake/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		session, err := escrowService.GetSession(c.Params("id"))
		if err != nil {
			return escrowError(c, err)
		}
		if session.Owner != userID && !middleware.HasRole(c, "admin") {
			return escrowError(c, services.ErrUnauthorized)
		}
		return c.JSON(session)
	})

	securedGroup.Get("/stakes", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		sessions, err := escrowService.ListSessions(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list sessions",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"sessions": sessions})
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Post("/pool/init", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}

		pool, err := escrowService.InitializePool(userID)
		if err != nil {
			return escrowError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pool)
	})

	adminGroup.Post("/custody/deposit", func(c *fiber.Ctx) error {
		if !middleware.HasRole(c, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}

		type Req struct {
			Account string `json:"account"`
			Amount  int64  `json:"amount"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		if err := escrowService.Deposit(req.Account, req.Amount); err != nil {
			return escrowError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "deposit credited",
			"account": req.Account,
			"amount":  req.Amount,
		})
	})
}

// escrowError maps the service failure taxonomy onto HTTP statuses.
func escrowError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidDuration),
		errors.Is(err, services.ErrInvalidDifficulty),
		errors.Is(err, services.ErrInvalidAmount):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrAlreadyForfeited),
		errors.Is(err, services.ErrPoolExists):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrStalePayload),
		errors.Is(err, services.ErrInvalidPayload):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInsufficientFunds):
		status = fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrPoolNotInitialized):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
