package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockStatsReader struct {
	mock.Mock
}

func (that *mockStatsReader) CountLive(ctx context.Context) (int, error) {
	args := that.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (that *mockStatsReader) Outcomes(ctx context.Context) (map[string]int64, error) {
	args := that.Called(ctx)

	outcomes, _ := args.Get(0).(map[string]int64)
	return outcomes, args.Error(1)
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Ping", func(t *testing.T) {
		// Given: a router with no stats behind it
		router := NewRouter(&mockStatsReader{})

		// When: calling /ping
		response := get(router, "/ping")

		// Then: pong
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "pong", response.Body.String())
	})

	t.Run("Stats returns live matches and outcome counters", func(t *testing.T) {
		// Given: two live matches and some finished ones
		stats := &mockStatsReader{}
		stats.On("CountLive", mock.Anything).Return(2, nil).Once()
		stats.On("Outcomes", mock.Anything).Return(map[string]int64{"score_final": 3, "timeout": 1}, nil).Once()

		// When: calling /stats
		response := get(NewRouter(stats), "/stats")

		// Then: both are reported
		require.Equal(t, http.StatusOK, response.Code)

		var body StatsResponse
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
		assert.Equal(t, StatsResponse{
			LiveMatches: 2,
			Outcomes:    map[string]int64{"score_final": 3, "timeout": 1},
		}, body)

		stats.AssertExpectations(t)
	})

	t.Run("Stats fails when live matches can't be counted", func(t *testing.T) {
		stats := &mockStatsReader{}
		stats.On("CountLive", mock.Anything).Return(0, errRedisDown).Once()

		response := get(NewRouter(stats), "/stats")

		assert.Equal(t, http.StatusInternalServerError, response.Code)
		assert.JSONEq(t, `{"error":"failed to count live matches"}`, response.Body.String())
		stats.AssertNotCalled(t, "Outcomes", mock.Anything)
	})

	t.Run("Stats fails when outcomes can't be read", func(t *testing.T) {
		stats := &mockStatsReader{}
		stats.On("CountLive", mock.Anything).Return(0, nil).Once()
		stats.On("Outcomes", mock.Anything).Return(nil, errRedisDown).Once()

		response := get(NewRouter(stats), "/stats")

		assert.Equal(t, http.StatusInternalServerError, response.Code)
		assert.JSONEq(t, `{"error":"failed to read outcomes"}`, response.Body.String())
	})

	t.Run("Unknown route", func(t *testing.T) {
		response := get(NewRouter(&mockStatsReader{}), "/games")

		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}
