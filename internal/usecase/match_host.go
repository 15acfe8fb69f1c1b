package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"time"

	"github.com/rocketscienceinc/carcassonne-backend/internal/config"
	"github.com/rocketscienceinc/carcassonne-backend/internal/deck"
	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
	"github.com/rocketscienceinc/carcassonne-backend/internal/session"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
	IncrementOutcome(ctx context.Context, reason entity.Reason) error
}

// MatchHost turns a pair of connected players into a running session.
type MatchHost struct {
	logger    *slog.Logger
	matchRepo matchRepo
	game      config.Game

	// newDeck is swapped in tests
	newDeck func(rng *rand.Rand) []entity.Tile
}

func NewMatchHost(logger *slog.Logger, matchRepo matchRepo, game config.Game) *MatchHost {
	return &MatchHost{
		logger:    logger.With("component", "match_host"),
		matchRepo: matchRepo,
		game:      game,
		newDeck: func(rng *rand.Rand) []entity.Tile {
			tiles := deck.New()
			deck.Shuffle(tiles, rng)
			return tiles
		},
	}
}

// Host - owns both connections from here on and closes them whatever happens.
func (that *MatchHost) Host(ctx context.Context, players [entity.PlayerCount]net.Conn) (entity.Outcome, error) {
	log := that.logger.With("method", "Host")

	rng := that.newRand()

	transports := [entity.PlayerCount]session.Transport{players[0], players[1]}

	gameSession, err := session.New(that.logger, that.matchRepo, transports, that.newDeck(rng), session.Options{
		BoardAxis:   that.game.BoardAxis,
		MoveTimeout: that.game.MoveTimeout,
		Rand:        rng,
	})
	if err != nil {
		for _, player := range players {
			if player != nil {
				_ = player.Close()
			}
		}

		return entity.Outcome{}, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session started", "session_id", gameSession.ID())

	return gameSession.Run(ctx), nil
}

// newRand - one source per session, seeded once; a configured seed makes sessions reproducible.
func (that *MatchHost) newRand() *rand.Rand {
	seed := that.game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // game shuffling, not crypto
}
