package seedscores

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/stringball/scores/pkg/logger"
)

// Score distribution bounds. Mirrors the spread of real play sessions: most
// submissions land mid-range with a thin elite tail.
const (
	randomDivisor  = 1_000_000
	casualMax      = 200.0
	regularMin     = 150.0
	regularRange   = 400.0
	eliteMin       = 500.0
	eliteRange     = 700.0
	eliteShareMod  = 10 // 1 in 10 submissions is elite
	casualShareMod = 3  // 1 in 3 is casual
)

// randomFloat returns a random float64 in [0, 1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomDivisor))
	return float64(n.Int64()) / float64(randomDivisor)
}

// generate builds Count submissions with unique player names. Names derive
// from UUIDs so concurrent runs never collide, trimmed to fit the service's
// display-name limit.
func generate(ctx context.Context, cfg *Config, stats *Stats) []Submission {
	logger.Get().Info(ctx, "generating submissions",
		logger.Int("count", cfg.Count),
		logger.String("game", cfg.Game))

	subs := make([]Submission, cfg.Count)
	for i := range subs {
		subs[i] = Submission{
			Game:  cfg.Game,
			Name:  "seed-" + uuid.New().String()[:8],
			Score: scoreFor(i),
		}
	}
	stats.Generated = len(subs)
	return subs
}

// scoreFor picks a score band by submission index and jitters within it.
func scoreFor(i int) float64 {
	switch {
	case i%eliteShareMod == 0:
		return eliteMin + randomFloat()*eliteRange
	case i%casualShareMod == 0:
		return randomFloat() * casualMax
	default:
		return regularMin + randomFloat()*regularRange
	}
}
