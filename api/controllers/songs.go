package controllers

import (
	"errors"
	"net/http"

	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/api/transport"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type SongController struct {
	storage storage.SongStorage
}

func NewSongController(s storage.SongStorage) *SongController {
	return &SongController{storage: s}
}

func (c *SongController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/songs", c.getAll)

	admin := engine.Group("/api/admin/songs", transport.AdminAuthMiddleware())
	admin.POST("", c.create)
	admin.PUT("/:id", c.update)
	admin.DELETE("/:id", c.delete)
}

// @Summary Get the song catalog
// @Tags Songs
// @Produce json
// @Success 200 {array} models.SongResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/songs [get]
func (c *SongController) getAll(g *gin.Context) {
	songs, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("SONG: failed to get all songs: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.SongResponse, 0, len(songs))
	for _, s := range songs {
		responses = append(responses, models.TransformSongFromStorage(s))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security AdminToken
// @Summary Add a song to the catalog
// @Tags Songs
// @Accept json
// @Produce json
// @Param song body models.SongCreateRequest true "Song object"
// @Success 200 {object} models.SongResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/songs [post]
func (c *SongController) create(g *gin.Context) {
	var req models.SongCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("SONG: invalid create song request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == "" || req.Artist == "" {
		logging.Log.Errorf("SONG: invalid create song request: %v", req)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request missing title or artist"})
		return
	}

	id := req.ID
	if id == "" {
		id = c.generateSongID()
	}

	song := &storage.Song{
		ID:         id,
		Title:      req.Title,
		Artist:     req.Artist,
		Thumbnail:  req.Thumbnail,
		Australian: req.Australian,
	}

	if err := c.storage.Create(g.Request.Context(), song); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			logging.Log.Warnf("SONG: song with ID %s already exists", id)
			g.JSON(http.StatusConflict, gin.H{"error": "song with ID already exists"})
			return
		}

		logging.Log.Errorf("SONG: failed to create song: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logging.Log.Infof("SONG: created song %s (%s by %s)", song.ID, song.Title, song.Artist)
	g.JSON(http.StatusOK, models.TransformSongFromStorage(song))
}

// @Security AdminToken
// @Summary Update a catalog song
// @Tags Songs
// @Accept json
// @Produce json
// @Param id path string true "Song ID"
// @Param song body models.SongUpdateRequest true "Song update object"
// @Success 200 {object} models.SongResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/songs/{id} [put]
func (c *SongController) update(g *gin.Context) {
	id := g.Param("id")

	var req models.SongUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("SONG: invalid update song request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == "" || req.Artist == "" {
		logging.Log.Errorf("SONG: invalid update song request: %v", req)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request missing title or artist"})
		return
	}

	existing, err := c.storage.Get(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("SONG: failed to get song: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "song not found"})
		return
	}

	song := &storage.Song{
		ID:         id,
		Title:      req.Title,
		Artist:     req.Artist,
		Thumbnail:  req.Thumbnail,
		Australian: req.Australian,
		CreatedAt:  existing.CreatedAt,
	}

	if err := c.storage.Update(g.Request.Context(), song); err != nil {
		logging.Log.Errorf("SONG: failed to update song: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformSongFromStorage(song))
}

// @Security AdminToken
// @Summary Delete a catalog song
// @Tags Songs
// @Produce json
// @Param id path string true "Song ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/songs/{id} [delete]
func (c *SongController) delete(g *gin.Context) {
	id := g.Param("id")
	if err := c.storage.Delete(g.Request.Context(), id); err != nil {
		logging.Log.Errorf("SONG: failed to delete song: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, gin.H{"message": "song deleted"})
}

func (c *SongController) generateSongID() string {
	id, err := gonanoid.Generate(models.Alphabet, 8)
	if err != nil {
		logging.Log.Errorf("SONG: failed to generate song ID: %v", err)
		return "ERROR"
	}
	return id
}
