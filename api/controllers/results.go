package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/api/transport"
	"github.com/CarlManson/hottest100/live"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/CarlManson/hottest100/storage"
	"github.com/gin-gonic/gin"
)

type ResultController struct {
	results        storage.ResultStorage
	songs          storage.SongStorage
	hub            *live.Hub
	loader         *SnapshotLoader
	rankZeroScores bool
}

func NewResultController(results storage.ResultStorage, songs storage.SongStorage, hub *live.Hub, loader *SnapshotLoader, rankZeroScores bool) *ResultController {
	return &ResultController{
		results:        results,
		songs:          songs,
		hub:            hub,
		loader:         loader,
		rankZeroScores: rankZeroScores,
	}
}

func (c *ResultController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/results", c.getAll)

	admin := engine.Group("/api/admin/results", transport.AdminAuthMiddleware())
	admin.PUT("/:position", c.put)
	admin.DELETE("/:position", c.delete)
	admin.POST("/reset", c.reset)
}

// @Summary Get the revealed countdown, split into both bands
// @Tags Results
// @Produce json
// @Success 200 {object} models.ResultsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/results [get]
func (c *ResultController) getAll(g *gin.Context) {
	results, err := c.results.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("RESULT: failed to get results: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	songs, err := c.songs.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("RESULT: failed to get song catalog: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	catalog := make(map[string]*storage.Song, len(songs))
	for _, s := range songs {
		catalog[s.ID] = s
	}

	response := models.ResultsResponse{
		Hottest100: make([]models.ResultEntryResponse, 0),
		Hottest200: make([]models.ResultEntryResponse, 0),
	}
	for _, r := range results {
		entry := models.TransformResultFromStorage(r, catalog[r.SongID])
		if r.Position <= scoring.MainMaxPosition {
			response.Hottest100 = append(response.Hottest100, entry)
		} else {
			response.Hottest200 = append(response.Hottest200, entry)
		}
	}
	sort.Slice(response.Hottest100, func(i, j int) bool {
		return response.Hottest100[i].Position < response.Hottest100[j].Position
	})
	sort.Slice(response.Hottest200, func(i, j int) bool {
		return response.Hottest200[i].Position < response.Hottest200[j].Position
	})

	g.JSON(http.StatusOK, response)
}

// @Security AdminToken
// @Summary Record (or correct) the song revealed at a countdown position
// @Tags Results
// @Accept json
// @Produce json
// @Param position path int true "Countdown position (1-200)"
// @Param result body models.ResultPutRequest true "Revealed song"
// @Success 200 {object} models.ResultEntryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results/{position} [put]
func (c *ResultController) put(g *gin.Context) {
	position, err := strconv.Atoi(g.Param("position"))
	if err != nil || position < 1 || position > scoring.ExtendedMaxPosition {
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid position"})
		return
	}

	var req models.ResultPutRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.SongID == "" {
		logging.Log.Errorf("RESULT: invalid result request for position %d: %v", position, err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request missing songId"})
		return
	}

	song, err := c.songs.Get(g.Request.Context(), req.SongID)
	if err != nil {
		logging.Log.Errorf("RESULT: failed to get song %s: %v", req.SongID, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if song == nil {
		logging.Log.Warnf("RESULT: unknown song %s for position %d", req.SongID, position)
		g.JSON(http.StatusBadRequest, gin.H{"error": "unknown song: " + req.SongID})
		return
	}

	// Validate the countdown as it would look after this write: the same
	// song must never hold two positions.
	existing, err := c.results.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("RESULT: failed to get results: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var main, extended []scoring.Result
	for _, r := range existing {
		if r.Position == position {
			continue
		}
		entry := scoring.Result{SongID: r.SongID, Position: r.Position}
		if r.Position <= scoring.MainMaxPosition {
			main = append(main, entry)
		} else {
			extended = append(extended, entry)
		}
	}
	candidate := scoring.Result{SongID: req.SongID, Position: position}
	if position <= scoring.MainMaxPosition {
		main = append(main, candidate)
	} else {
		extended = append(extended, candidate)
	}
	if err := scoring.ValidateResults(main, extended); err != nil {
		logging.Log.Warnf("RESULT: rejected result at position %d: %v", position, err)
		g.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	result := &storage.CountdownResult{
		Position: position,
		SongID:   req.SongID,
	}
	if err := c.results.Update(g.Request.Context(), result); err != nil {
		logging.Log.Errorf("RESULT: failed to store result at position %d: %v", position, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("RESULT: position %d revealed as %s (%s by %s)", position, song.ID, song.Title, song.Artist)
	broadcastLeaderboard(g.Request.Context(), c.hub, c.loader, c.rankZeroScores)
	g.JSON(http.StatusOK, models.TransformResultFromStorage(result, song))
}

// @Security AdminToken
// @Summary Remove the result at a countdown position
// @Tags Results
// @Produce json
// @Param position path int true "Countdown position (1-200)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results/{position} [delete]
func (c *ResultController) delete(g *gin.Context) {
	position, err := strconv.Atoi(g.Param("position"))
	if err != nil || position < 1 || position > scoring.ExtendedMaxPosition {
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid position"})
		return
	}

	if err := c.results.Delete(g.Request.Context(), position); err != nil {
		logging.Log.Errorf("RESULT: failed to delete result at position %d: %v", position, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	broadcastLeaderboard(g.Request.Context(), c.hub, c.loader, c.rankZeroScores)
	g.JSON(http.StatusOK, gin.H{"message": "result deleted"})
}

// @Security AdminToken
// @Summary Wipe every revealed result
// @Tags Results
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/results/reset [post]
func (c *ResultController) reset(g *gin.Context) {
	if err := c.results.DeleteAll(g.Request.Context()); err != nil {
		logging.Log.Errorf("RESULT: failed to reset results: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Info("RESULT: all results reset")
	broadcastLeaderboard(g.Request.Context(), c.hub, c.loader, c.rankZeroScores)
	g.JSON(http.StatusOK, gin.H{"message": "all results reset"})
}
