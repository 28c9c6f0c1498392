package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"radio-charts/internal/models"
)

// Cataloger records catalog entries and plays.
type Cataloger interface {
	AddChannel(ctx context.Context, name string) (*models.Station, error)
	AddPerformer(ctx context.Context, name string) (*models.Performer, error)
	AddSong(ctx context.Context, title, performer string) (*models.Song, error)
	AddPlay(ctx context.Context, title, performer, channel string, start, end time.Time) (*models.Play, error)
}

// CatalogHandler serves the add_* endpoints.
type CatalogHandler struct {
	catalog Cataloger
	timeout time.Duration
}

func NewCatalogHandler(catalog Cataloger, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, timeout: timeout}
}

type nameInput struct {
	Name string `json:"name" binding:"required"`
}

type songInput struct {
	Title     string `json:"title" binding:"required"`
	Performer string `json:"performer" binding:"required"`
}

type playInput struct {
	Title     string     `json:"title" binding:"required"`
	Performer string     `json:"performer" binding:"required"`
	Channel   string     `json:"channel" binding:"required"`
	Start     *Timestamp `json:"start" binding:"required"`
	End       *Timestamp `json:"end" binding:"required"`
}

// PlayResult echoes a recorded play.
type PlayResult struct {
	Title     string    `json:"title"`
	Performer string    `json:"performer"`
	Channel   string    `json:"channel"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (h *CatalogHandler) AddChannel(c *gin.Context) {
	var input nameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, bindError(err), emptyObject())
		return
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	station, err := h.catalog.AddChannel(ctx, input.Name)
	if err != nil {
		fail(c, err, emptyObject())
		return
	}
	ok(c, http.StatusCreated, gin.H{"name": station.Name})
}

func (h *CatalogHandler) AddPerformer(c *gin.Context) {
	var input nameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, bindError(err), emptyObject())
		return
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	performer, err := h.catalog.AddPerformer(ctx, input.Name)
	if err != nil {
		fail(c, err, emptyObject())
		return
	}
	ok(c, http.StatusCreated, gin.H{"name": performer.Name})
}

// AddSong requires the performer to have been added first.
func (h *CatalogHandler) AddSong(c *gin.Context) {
	var input songInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, bindError(err), emptyObject())
		return
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	song, err := h.catalog.AddSong(ctx, input.Title, input.Performer)
	if err != nil {
		fail(c, err, emptyObject())
		return
	}
	ok(c, http.StatusCreated, gin.H{"title": song.Title, "performer": song.PerformerName()})
}

func (h *CatalogHandler) AddPlay(c *gin.Context) {
	var input playInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, bindError(err), emptyObject())
		return
	}
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	play, err := h.catalog.AddPlay(ctx, input.Title, input.Performer, input.Channel, input.Start.Time(), input.End.Time())
	if err != nil {
		fail(c, err, emptyObject())
		return
	}
	ok(c, http.StatusCreated, PlayResult{
		Title:     play.Song.Title,
		Performer: play.Song.PerformerName(),
		Channel:   play.Station.Name,
		Start:     play.Start.UTC(),
		End:       play.End.UTC(),
	})
}
