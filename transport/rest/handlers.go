package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type statsReader interface {
	CountLive(ctx context.Context) (int, error)
	Outcomes(ctx context.Context) (map[string]int64, error)
}

type StatsResponse struct {
	LiveMatches int              `json:"live_matches"`
	Outcomes    map[string]int64 `json:"outcomes"`
}

type Handlers struct {
	stats statsReader
}

func NewHandlers(stats statsReader) *Handlers {
	return &Handlers{stats: stats}
}

func (that *Handlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (that *Handlers) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	live, err := that.stats.CountLive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count live matches"})
		return
	}

	outcomes, err := that.stats.Outcomes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read outcomes"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		LiveMatches: live,
		Outcomes:    outcomes,
	})
}
