package services

import "errors"

// Caller-facing failures. Every operation either applies all of its
// effects or returns one of these with nothing committed; none of them
// is retryable without changed input.
var (
	// Validation
	ErrInvalidDuration   = errors.New("invalid duration: must be 30, 60 or 90 seconds")
	ErrInvalidDifficulty = errors.New("invalid difficulty: must be easy, medium or hard")
	ErrInvalidAmount     = errors.New("invalid amount: must be greater than 0")

	// State
	ErrAlreadyClaimed   = errors.New("reward already claimed")
	ErrAlreadyForfeited = errors.New("stake already forfeited")

	// Authorization
	ErrUnauthorized = errors.New("caller is not the session owner")

	// Anti-cheat
	ErrStalePayload   = errors.New("anti-cheat payload is stale")
	ErrInvalidPayload = errors.New("anti-cheat payload hash mismatch")

	// Custody / storage
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrPoolExists         = errors.New("reward pool already initialized")
	ErrPoolNotInitialized = errors.New("reward pool not initialized")
	ErrSessionNotFound    = errors.New("stake session not found")
)
