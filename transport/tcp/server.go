package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/carcassonne-backend/internal/codec"
	"github.com/rocketscienceinc/carcassonne-backend/internal/config"
	"github.com/rocketscienceinc/carcassonne-backend/internal/entity"
)

var ErrSessionAcceptTimeout = errors.New("players did not join the session listener in time")

type matchHost interface {
	Host(ctx context.Context, players [entity.PlayerCount]net.Conn) (entity.Outcome, error)
}

// Server pairs incoming connections two at a time and hands every pair to its own goroutine.
type Server struct {
	logger  *slog.Logger
	host    matchHost
	cfg     config.Matchmaker
	limiter *rate.Limiter

	// sessions is only waited on during shutdown
	sessions sync.WaitGroup
}

func New(logger *slog.Logger, host matchHost, cfg config.Matchmaker) *Server {
	limit := rate.Inf
	if cfg.AcceptRate > 0 {
		limit = rate.Limit(cfg.AcceptRate)
	}

	burst := cfg.AcceptBurst
	if burst < 1 {
		burst = 1
	}

	return &Server{
		logger:  logger.With("component", "matchmaker"),
		host:    host,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Start - starts the TCP matchmaker.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve accepts on the listener until ctx is canceled. It closes the listener.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve", "addr", listener.Addr().String())

	stop := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer stop()

	var waiting net.Conn
	defer func() {
		if waiting != nil {
			_ = waiting.Close()
		}
		that.sessions.Wait()
	}()

	log.Info("matchmaker listening")

	for {
		if err := that.limiter.Wait(ctx); err != nil {
			return nil //nolint: nilerr // canceled context is a normal shutdown
		}

		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				log.Info("matchmaker stopped")
				return nil
			}

			return fmt.Errorf("failed to accept connection: %w", err)
		}

		if waiting == nil {
			waiting = conn
			log.Info("waiting for match", "player", conn.RemoteAddr().String())
			continue
		}

		pair := [entity.PlayerCount]net.Conn{waiting, conn}
		waiting = nil

		log.Info("found a match", "first", pair[0].RemoteAddr().String(), "second", pair[1].RemoteAddr().String())

		that.sessions.Add(1)
		go func() {
			defer that.sessions.Done()
			that.handle(ctx, pair)
		}()
	}
}

func (that *Server) handle(ctx context.Context, lobby [entity.PlayerCount]net.Conn) {
	log := that.logger.With("method", "handle")

	players := lobby
	if that.cfg.Redirect {
		var err error
		if players, err = that.redirect(lobby); err != nil {
			log.Error("failed to redirect players", "error", err)
			return
		}
	}

	outcome, err := that.host.Host(ctx, players)
	if err != nil {
		log.Error("failed to host match", "error", err)
		return
	}

	log.Info("match over", "winner", outcome.Winner, "reason", outcome.Reason.String(), "turns", outcome.Turns)
}

// redirect - opens an ephemeral listener, tells both lobby connections its port and waits
// for the same two hosts to connect there. Lobby connections are always closed.
func (that *Server) redirect(lobby [entity.PlayerCount]net.Conn) ([entity.PlayerCount]net.Conn, error) {
	var players [entity.PlayerCount]net.Conn

	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		closeAll(lobby[:])
		return players, fmt.Errorf("failed to open session listener: %w", err)
	}
	defer listener.Close()

	port := uint16(listener.Addr().(*net.TCPAddr).Port) //nolint: gosec // tcp ports fit in 16 bits

	expected := make(map[string]int, entity.PlayerCount)
	frame := codec.EncodeRedirect(port)

	for _, conn := range lobby {
		expected[host(conn.RemoteAddr())]++

		if _, err = conn.Write(frame[:]); err != nil {
			closeAll(lobby[:])
			return players, fmt.Errorf("failed to send session port: %w", err)
		}
	}
	closeAll(lobby[:])

	that.logger.Info("redirected players", "port", port)

	return that.acceptPlayers(listener, expected)
}

func (that *Server) acceptPlayers(listener net.Listener, expected map[string]int) ([entity.PlayerCount]net.Conn, error) {
	var players [entity.PlayerCount]net.Conn

	if tcpListener, ok := listener.(*net.TCPListener); ok {
		if err := tcpListener.SetDeadline(time.Now().Add(that.cfg.AcceptTimeout)); err != nil {
			return players, fmt.Errorf("failed to set accept deadline: %w", err)
		}
	}

	for joined := 0; joined < entity.PlayerCount; {
		conn, err := listener.Accept()
		if err != nil {
			closeAll(players[:joined])
			return players, fmt.Errorf("%w: %w", ErrSessionAcceptTimeout, err)
		}

		remote := host(conn.RemoteAddr())
		if expected[remote] == 0 {
			that.logger.Warn("rejected unexpected host", "host", remote)
			_ = conn.Close()
			continue
		}

		expected[remote]--
		players[joined] = conn
		joined++
	}

	return players, nil
}

func host(addr net.Addr) string {
	if addr == nil {
		return ""
	}

	h, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	return h
}

func closeAll(conns []net.Conn) {
	for _, conn := range conns {
		if conn != nil {
			_ = conn.Close()
		}
	}
}
