package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/carcassonne-backend/internal/apperror"
	"github.com/rocketscienceinc/carcassonne-backend/internal/carcassonne"
	"github.com/rocketscienceinc/carcassonne-backend/internal/codec"
	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

var (
	ErrEmptyDeck      = errors.New("deck is empty")
	ErrBadStartTile   = errors.New("start tile can't be placed")
	ErrMissingPlayer  = errors.New("player transport is nil")
	ErrInvalidTimeout = errors.New("move timeout must be positive")
)

// Transport is one player's byte stream. net.Conn satisfies it.
type Transport interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	RemoteAddr() net.Addr
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
	IncrementOutcome(ctx context.Context, reason entity.Reason) error
}

type Options struct {
	BoardAxis   int
	MoveTimeout time.Duration
	// Rand picks the first player; nil seeds a source from the clock.
	Rand *rand.Rand
}

// Session runs one match between two players. It owns the board, the deck and both
// transports, and releases them when Run returns.
type Session struct {
	logger *slog.Logger
	repo   matchRepo

	id      string
	players [entity.PlayerCount]Transport
	timeout time.Duration
	rng     *rand.Rand

	board  *entity.Board
	deck   []entity.Tile
	dealt  int
	scores [entity.PlayerCount]int

	acting int
	prev   entity.Move
	turns  int
	match  *entity.Match
}

func New(logger *slog.Logger, repo matchRepo, players [entity.PlayerCount]Transport, deck []entity.Tile, opts Options) (*Session, error) {
	if len(deck) == 0 {
		return nil, ErrEmptyDeck
	}

	if deck[0].IsEmpty() {
		return nil, ErrBadStartTile
	}

	for _, player := range players {
		if player == nil {
			return nil, ErrMissingPlayer
		}
	}

	if opts.MoveTimeout <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeout, opts.MoveTimeout)
	}

	board, err := entity.NewBoard(opts.BoardAxis)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	id := uuid.NewString()

	return &Session{
		logger:  logger.With("component", "session", "session_id", id),
		repo:    repo,
		id:      id,
		players: players,
		timeout: opts.MoveTimeout,
		rng:     rng,
		board:   board,
		deck:    deck,
	}, nil
}

func (that *Session) ID() string {
	return that.id
}

// Run drives the match to its end, tells both players the result and closes both transports.
// It never returns early: every exit path goes through termination and cleanup.
func (that *Session) Run(ctx context.Context) entity.Outcome {
	log := that.logger.With("method", "Run")

	defer that.release()

	that.register(ctx)

	outcome := that.play(ctx)

	that.terminate(outcome)
	that.unregister(ctx, outcome)

	log.Info("session finished",
		"winner", outcome.Winner,
		"reason", outcome.Reason.String(),
		"turns", outcome.Turns,
	)

	return outcome
}

func (that *Session) play(ctx context.Context) entity.Outcome {
	if loser, err := that.handshake(); err != nil {
		return that.forfeit(loser, err)
	}

	if loser, err := that.sendDeck(); err != nil {
		return that.forfeit(loser, err)
	}

	if err := that.placeStartTile(); err != nil {
		// deck[0] is ours, not a player's fault
		that.logger.Error("failed to place start tile", "error", err)
		return that.finalOutcome()
	}

	for {
		tile, err := that.deal()
		if errors.Is(err, apperror.ErrDeckExhausted) {
			return that.finalOutcome()
		}

		if err = that.turn(tile); err != nil {
			return that.forfeit(that.acting, err)
		}

		that.turns++
		that.acting = opponent(that.acting)
		that.register(ctx)
	}
}

// handshake - picks the first player and sends each player its flag and the move clock.
func (that *Session) handshake() (int, error) {
	that.acting = that.rng.Intn(entity.PlayerCount)

	for i, player := range that.players {
		frame := codec.EncodeHandshake(codec.Handshake{
			First: i == that.acting,
			Clock: uint64(that.timeout / time.Second),
		})

		if err := that.write(player, frame[:]); err != nil {
			return i, fmt.Errorf("failed to send handshake: %w", err)
		}
	}

	return 0, nil
}

func (that *Session) sendDeck() (int, error) {
	payload := codec.EncodeDeck(that.deck)

	for i, player := range that.players {
		if err := that.write(player, payload); err != nil {
			return i, fmt.Errorf("failed to send deck: %w", err)
		}
	}

	return 0, nil
}

func (that *Session) placeStartTile() error {
	start, err := that.deal()
	if err != nil {
		return err
	}

	if err = that.board.Place(that.board.Center(), start); err != nil {
		return fmt.Errorf("%w: %w", ErrBadStartTile, err)
	}

	return nil
}

func (that *Session) deal() (entity.Tile, error) {
	if that.dealt >= len(that.deck) {
		return entity.Tile{}, apperror.ErrDeckExhausted
	}

	tile := that.deck[that.dealt]
	that.dealt++

	return tile, nil
}

// turn - sends the dealt tile to the acting player and applies the reply.
func (that *Session) turn(tile entity.Tile) error {
	log := that.logger.With("method", "turn", "player", that.acting, "turn", that.turns)
	player := that.players[that.acting]

	frame := codec.EncodeTurn(tile, that.prev)
	if err := that.write(player, frame[:]); err != nil {
		return fmt.Errorf("failed to send turn: %w", err)
	}

	move, err := that.readMove(player)
	if err != nil {
		return err
	}

	if !move.Tile.Equal(tile) {
		return fmt.Errorf("%w: dealt %v, got %v", apperror.ErrProtocolViolation, tile, move.Tile)
	}

	if err = carcassonne.PlayMove(that.board, move); err != nil {
		return err
	}

	that.prev = move
	log.Debug("move accepted", "slot", move.Slot.String(), "rotation", move.Rotation)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("board", "render", that.board.String())
	}

	return nil
}

func (that *Session) readMove(player Transport) (entity.Move, error) {
	if err := player.SetReadDeadline(time.Now().Add(that.timeout)); err != nil {
		return entity.Move{}, fmt.Errorf("%w: %w", apperror.ErrTimeout, err)
	}

	var buf [codec.MoveSize]byte
	if _, err := io.ReadFull(player, buf[:]); err != nil {
		return entity.Move{}, fmt.Errorf("%w: %w", apperror.ErrTimeout, err)
	}

	return codec.DecodeMove(buf[:])
}

func (that *Session) write(player Transport, payload []byte) error {
	if err := player.SetWriteDeadline(time.Now().Add(that.timeout)); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrTimeout, err)
	}

	if _, err := player.Write(payload); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrTimeout, err)
	}

	return nil
}

// forfeit - the loser's opponent wins; the error decides the reason.
func (that *Session) forfeit(loser int, err error) entity.Outcome {
	reason := classify(err)

	that.logger.Info("player forfeits",
		"player", loser,
		"reason", reason.String(),
		"error", err,
	)

	return entity.Outcome{
		Winner: opponent(loser),
		Reason: reason,
		Turns:  that.turns,
		Scores: that.scores,
	}
}

// finalOutcome - scoring isn't implemented, so scores stay equal and nobody wins.
func (that *Session) finalOutcome() entity.Outcome {
	winner := entity.NoWinner

	switch {
	case that.scores[0] > that.scores[1]:
		winner = 0
	case that.scores[1] > that.scores[0]:
		winner = 1
	}

	return entity.Outcome{
		Winner: winner,
		Reason: entity.ReasonScoreFinal,
		Turns:  that.turns,
		Scores: that.scores,
	}
}

func (that *Session) terminate(outcome entity.Outcome) {
	log := that.logger.With("method", "terminate")

	for i, player := range that.players {
		frame := codec.EncodeTermination(outcome.IsWinner(i), outcome.Reason)
		if err := that.write(player, frame[:]); err != nil {
			log.Warn("failed to send termination", "player", i, "error", err)
		}
	}
}

func (that *Session) release() {
	log := that.logger.With("method", "release")

	for i, player := range that.players {
		if err := player.Close(); err != nil {
			log.Warn("failed to close transport", "player", i, "error", err)
		}
	}

	that.board = nil
	that.deck = nil
}

func (that *Session) register(ctx context.Context) {
	if that.repo == nil {
		return
	}

	if that.match == nil {
		addrs := make([]string, 0, len(that.players))
		for _, player := range that.players {
			addrs = append(addrs, remoteAddr(player))
		}
		that.match = entity.NewMatch(that.id, addrs)
	}

	that.match.Turns = that.turns

	if err := that.repo.CreateOrUpdate(ctx, that.match); err != nil {
		that.logger.Warn("failed to register match", "error", err)
	}
}

func (that *Session) unregister(ctx context.Context, outcome entity.Outcome) {
	if that.repo == nil {
		return
	}

	log := that.logger.With("method", "unregister")

	if err := that.repo.DeleteByID(ctx, that.id); err != nil {
		log.Warn("failed to delete match", "error", err)
	}

	if err := that.repo.IncrementOutcome(ctx, outcome.Reason); err != nil {
		log.Warn("failed to count outcome", "error", err)
	}
}

func classify(err error) entity.Reason {
	switch {
	case errors.Is(err, apperror.ErrEdgeMismatch),
		errors.Is(err, apperror.ErrNotPlaceable),
		errors.Is(err, apperror.ErrInvalidRotation),
		errors.Is(err, apperror.ErrEmptyTile),
		errors.Is(err, apperror.ErrProtocolViolation):
		return entity.ReasonInvalid
	default:
		return entity.ReasonTimeout
	}
}

func opponent(player int) int {
	return (player + 1) % entity.PlayerCount
}

func remoteAddr(player Transport) string {
	if addr := player.RemoteAddr(); addr != nil {
		return addr.String()
	}

	return ""
}
