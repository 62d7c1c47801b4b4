package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"solpin-escrow/models"

	"github.com/jonboulle/clockwork"
)

// FreshnessWindow is the maximum accepted age of a claim payload,
// measured against the server clock at verification time.
const FreshnessWindow = 120 * time.Second

// futureSkewTolerance bounds how far ahead of the server clock a
// payload timestamp may sit. Honest clients only drift by a few
// seconds; anything beyond that would let a claimant post-date the
// payload to stretch the freshness window.
const futureSkewTolerance = 5 * time.Second

// PayloadVerifier proves that a claim's outcome fields were produced
// together (digest) and recently (freshness). It holds no state and
// mutates nothing.
//
// The digest is derived entirely from claimant-supplied values with no
// secret key, so it authenticates "the documented formula was used",
// not "this score was actually achieved". Hardening this would need a
// keyed MAC or a server-observed score source and would change the
// wire contract.
type PayloadVerifier struct {
	Clock clockwork.Clock
}

func NewPayloadVerifier(clock clockwork.Clock) *PayloadVerifier {
	return &PayloadVerifier{Clock: clock}
}

// PayloadDigest computes the canonical claim digest:
//
//	sha256("score|timestamp|duration|difficulty")
//
// with duration in seconds (30/60/90) and difficulty as its wire index
// (0/1/2). Field order and the "|" delimiter are part of the protocol;
// the producing client must match byte for byte.
func PayloadDigest(score, gameTimestamp int64, duration models.Duration, difficulty models.Difficulty) [sha256.Size]byte {
	message := fmt.Sprintf("%d|%d|%d|%d", score, gameTimestamp, duration, difficulty.Index())
	return sha256.Sum256([]byte(message))
}

// Verify checks freshness first, then recomputes the digest from the
// session's stored tiers and compares the whole value against the
// presented hex digest. gameTimestamp is unix seconds as reported by
// the claimant.
func (v *PayloadVerifier) Verify(score, gameTimestamp int64, presentedHex string, duration models.Duration, difficulty models.Difficulty) error {
	age := v.Clock.Now().Unix() - gameTimestamp
	if age >= int64(FreshnessWindow/time.Second) {
		return ErrStalePayload
	}
	if age < -int64(futureSkewTolerance/time.Second) {
		return ErrStalePayload
	}

	presented, err := hex.DecodeString(presentedHex)
	if err != nil || len(presented) != sha256.Size {
		return ErrInvalidPayload
	}
	var got [sha256.Size]byte
	copy(got[:], presented)

	if got != PayloadDigest(score, gameTimestamp, duration, difficulty) {
		return ErrInvalidPayload
	}
	return nil
}
