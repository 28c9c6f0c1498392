package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"radio-charts/internal/charts"
)

// Charter answers the analytical queries.
type Charter interface {
	ListSongPlays(ctx context.Context, title, performer string, start, end time.Time) ([]charts.SongPlay, error)
	ListChannelPlays(ctx context.Context, channel string, start, end time.Time) ([]charts.ChannelPlay, error)
	TopPlays(ctx context.Context, q charts.TopQuery) ([]charts.TopPlayEntry, error)
}

// ChartsOptions bound the top report limit and each query's run time.
type ChartsOptions struct {
	DefaultLimit int
	MaxLimit     int
	Timeout      time.Duration
}

// ChartsHandler serves the get_* endpoints.
type ChartsHandler struct {
	engine Charter
	opts   ChartsOptions
}

func NewChartsHandler(engine Charter, opts ChartsOptions) *ChartsHandler {
	return &ChartsHandler{engine: engine, opts: opts}
}

// window reads the start and end query parameters.
func window(c *gin.Context) (time.Time, time.Time, error) {
	start, err := parseTime(c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTime(c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// GetSongPlays lists where and when a song was played.
func (h *ChartsHandler) GetSongPlays(c *gin.Context) {
	start, end, err := window(c)
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	ctx, cancel := requestContext(c, h.opts.Timeout)
	defer cancel()

	plays, err := h.engine.ListSongPlays(ctx, c.Query("title"), c.Query("performer"), start, end)
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	ok(c, http.StatusOK, plays)
}

// GetChannelPlays lists what a channel played.
func (h *ChartsHandler) GetChannelPlays(c *gin.Context) {
	start, end, err := window(c)
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	ctx, cancel := requestContext(c, h.opts.Timeout)
	defer cancel()

	plays, err := h.engine.ListChannelPlays(ctx, c.Query("channel"), start, end)
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	ok(c, http.StatusOK, plays)
}

// GetTop returns the top songs report for the requested channels.
func (h *ChartsHandler) GetTop(c *gin.Context) {
	channels, err := parseChannels(c.QueryArray("channels"))
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	start, err := parseTime(c.Query("start"))
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	limit, err := parseLimit(c.Query("limit"), h.opts.DefaultLimit, h.opts.MaxLimit)
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	period, err := parsePeriod(c.Query("period"))
	if err != nil {
		fail(c, err, emptyList())
		return
	}

	ctx, cancel := requestContext(c, h.opts.Timeout)
	defer cancel()

	entries, err := h.engine.TopPlays(ctx, charts.TopQuery{
		Channels: channels,
		Start:    start,
		Period:   period,
		Limit:    limit,
	})
	if err != nil {
		fail(c, err, emptyList())
		return
	}
	ok(c, http.StatusOK, entries)
}
