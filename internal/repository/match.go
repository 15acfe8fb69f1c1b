package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/carcassonne-backend/internal/apperror"
	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

const (
	matchKeyPrefix = "match:"
	outcomesKey    = "stats:outcomes"
	scanCount      = 100
)

type MatchRepository interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
	IncrementOutcome(ctx context.Context, reason entity.Reason) error
	CountLive(ctx context.Context) (int, error)
	Outcomes(ctx context.Context) (map[string]int64, error)
}

type dbMatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchRepository - live matches expire after ttl if a session dies without cleaning up.
func NewMatchRepository(client *redis.Client, ttl time.Duration) MatchRepository {
	return &dbMatch{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMatch) CreateOrUpdate(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	if err = that.client.Set(ctx, matchKeyPrefix+match.ID, matchJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var existingMatch entity.Match
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, matchKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete match by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}

func (that *dbMatch) IncrementOutcome(ctx context.Context, reason entity.Reason) error {
	if err := that.client.HIncrBy(ctx, outcomesKey, reason.String(), 1).Err(); err != nil {
		return fmt.Errorf("failed to count outcome: %w", err)
	}

	return nil
}

func (that *dbMatch) CountLive(ctx context.Context) (int, error) {
	count := 0

	iter := that.client.Scan(ctx, 0, matchKeyPrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		count++
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan matches: %w", err)
	}

	return count, nil
}

func (that *dbMatch) Outcomes(ctx context.Context) (map[string]int64, error) {
	raw, err := that.client.HGetAll(ctx, outcomesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get outcomes: %w", err)
	}

	outcomes := make(map[string]int64, len(raw))
	for reason, value := range raw {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse outcome %q: %w", reason, err)
		}
		outcomes[reason] = count
	}

	return outcomes, nil
}
