package controllers

import (
	"errors"
	"net/http"

	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/api/transport"
	"github.com/CarlManson/hottest100/live"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/CarlManson/hottest100/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type MemberController struct {
	members        storage.MemberStorage
	picks          storage.PickStorage
	songs          storage.SongStorage
	hub            *live.Hub
	loader         *SnapshotLoader
	rankZeroScores bool
}

func NewMemberController(members storage.MemberStorage, picks storage.PickStorage, songs storage.SongStorage, hub *live.Hub, loader *SnapshotLoader, rankZeroScores bool) *MemberController {
	return &MemberController{
		members:        members,
		picks:          picks,
		songs:          songs,
		hub:            hub,
		loader:         loader,
		rankZeroScores: rankZeroScores,
	}
}

func (c *MemberController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/members", c.getAll)
	engine.GET("/api/members/:id", c.get)
	engine.PUT("/api/members/:id/picks", c.replacePicks)

	admin := engine.Group("/api/admin/members", transport.AdminAuthMiddleware())
	admin.POST("", c.create)
	admin.PUT("/:id", c.update)
	admin.DELETE("/:id", c.delete)
}

// @Summary Get all family members with their picks
// @Tags Members
// @Produce json
// @Success 200 {array} models.MemberResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/members [get]
func (c *MemberController) getAll(g *gin.Context) {
	members, err := c.members.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to get all members: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	allPicks, err := c.picks.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to get picks: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	picksByMember := make(map[string][]*storage.Pick, len(members))
	for _, p := range allPicks {
		picksByMember[p.MemberID] = append(picksByMember[p.MemberID], p)
	}

	responses := make([]models.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, models.TransformMemberFromStorage(m, picksByMember[m.ID]))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Get a family member by ID
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.MemberResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/members/{id} [get]
func (c *MemberController) get(g *gin.Context) {
	id := g.Param("id")
	member, err := c.members.Get(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to get member: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if member == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	picks, err := c.picks.GetByMember(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to get picks for member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformMemberFromStorage(member, picks))
}

// @Summary Replace a member's ranked picks
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param picks body models.ReplacePicksRequest true "Full pick list"
// @Success 200 {object} models.MemberResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/members/{id}/picks [put]
func (c *MemberController) replacePicks(g *gin.Context) {
	id := g.Param("id")

	var req models.ReplacePicksRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("PICK: invalid replace picks request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	member, err := c.members.Get(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("PICK: failed to get member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if member == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	candidate := make([]scoring.Pick, 0, len(req.Picks))
	for _, p := range req.Picks {
		candidate = append(candidate, scoring.Pick{SongID: p.SongID, Rank: p.Rank})
	}
	if err := scoring.ValidatePicks(candidate); err != nil {
		logging.Log.Warnf("PICK: rejected picks for member %s: %v", id, err)
		g.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Picks must reference catalog songs
	songs, err := c.songs.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("PICK: failed to get song catalog: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	known := make(map[string]bool, len(songs))
	for _, s := range songs {
		known[s.ID] = true
	}
	for _, p := range candidate {
		if !known[p.SongID] {
			logging.Log.Warnf("PICK: member %s picked unknown song %s", id, p.SongID)
			g.JSON(http.StatusBadRequest, gin.H{"error": "unknown song: " + p.SongID})
			return
		}
	}

	stored := make([]*storage.Pick, 0, len(req.Picks))
	for _, p := range req.Picks {
		stored = append(stored, &storage.Pick{
			MemberID: id,
			SongID:   p.SongID,
			Rank:     p.Rank,
		})
	}
	if err := c.picks.ReplaceForMember(g.Request.Context(), id, stored); err != nil {
		logging.Log.Errorf("PICK: failed to replace picks for member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	broadcastLeaderboard(g.Request.Context(), c.hub, c.loader, c.rankZeroScores)
	g.JSON(http.StatusOK, models.TransformMemberFromStorage(member, stored))
}

// @Security AdminToken
// @Summary Create a family member
// @Tags Members
// @Accept json
// @Produce json
// @Param member body models.MemberCreateRequest true "Member object"
// @Success 200 {object} models.MemberResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/members [post]
func (c *MemberController) create(g *gin.Context) {
	var req models.MemberCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("MEMBER: invalid create member request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" {
		logging.Log.Errorf("MEMBER: invalid create member request: %v", req)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request empty name"})
		return
	}

	id := req.ID
	if id == "" {
		id = c.generateMemberID()
	}

	member := &storage.FamilyMember{
		ID:   id,
		Name: req.Name,
	}

	if err := c.members.Create(g.Request.Context(), member); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			logging.Log.Warnf("MEMBER: member with ID %s already exists", id)
			g.JSON(http.StatusConflict, gin.H{"error": "member with ID already exists"})
			return
		}

		logging.Log.Errorf("MEMBER: failed to create member: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logging.Log.Infof("MEMBER: created member %s (%s)", member.ID, member.Name)
	g.JSON(http.StatusOK, models.TransformMemberFromStorage(member, nil))
}

// @Security AdminToken
// @Summary Update a family member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param member body models.MemberUpdateRequest true "Member update object"
// @Success 200 {object} models.MemberResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/members/{id} [put]
func (c *MemberController) update(g *gin.Context) {
	id := g.Param("id")

	var req models.MemberUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("MEMBER: invalid update member request: %v", err)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == "" {
		logging.Log.Errorf("MEMBER: invalid update member request: %v", req)
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request empty name"})
		return
	}

	member := &storage.FamilyMember{
		ID:   id,
		Name: req.Name,
	}

	if err := c.members.Update(g.Request.Context(), member); err != nil {
		logging.Log.Errorf("MEMBER: failed to update member: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	picks, err := c.picks.GetByMember(g.Request.Context(), id)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to get picks for member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformMemberFromStorage(member, picks))
}

// @Security AdminToken
// @Summary Delete a family member and their picks
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/members/{id} [delete]
func (c *MemberController) delete(g *gin.Context) {
	id := g.Param("id")

	if err := c.picks.DeleteForMember(g.Request.Context(), id); err != nil {
		logging.Log.Errorf("MEMBER: failed to delete picks for member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := c.members.Delete(g.Request.Context(), id); err != nil {
		logging.Log.Errorf("MEMBER: failed to delete member: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	broadcastLeaderboard(g.Request.Context(), c.hub, c.loader, c.rankZeroScores)
	g.JSON(http.StatusOK, gin.H{"message": "member deleted"})
}

func (c *MemberController) generateMemberID() string {
	id, err := gonanoid.Generate(models.Alphabet, 5)
	if err != nil {
		logging.Log.Errorf("MEMBER: failed to generate member ID: %v", err)
		return "ERROR"
	}
	return id
}
