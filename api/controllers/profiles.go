package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/api/transport"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/profile"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/CarlManson/hottest100/storage"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profiles  storage.ProfileStorage
	loader    *SnapshotLoader
	generator *profile.Generator
}

// NewProfileController wires the taste-profile endpoints. A nil generator
// (no API key) leaves the read side working and turns generation into 503s.
func NewProfileController(profiles storage.ProfileStorage, loader *SnapshotLoader, generator *profile.Generator) *ProfileController {
	return &ProfileController{
		profiles:  profiles,
		loader:    loader,
		generator: generator,
	}
}

func (c *ProfileController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/profiles/:id", c.get)

	admin := engine.Group("/api/admin/profiles", transport.AdminAuthMiddleware())
	admin.POST("/:id/generate", c.generate)
	admin.POST("/generate", c.generateAll)
}

// @Summary Get a member's generated taste profile
// @Tags Profiles
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.ProfileResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/profiles/{id} [get]
func (c *ProfileController) get(g *gin.Context) {
	id := g.Param("id")
	p, err := c.profiles.Get(g.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		logging.Log.Errorf("PROFILE: failed to get profile for member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformProfileFromStorage(p))
}

// @Security AdminToken
// @Summary Generate a member's taste profile
// @Tags Profiles
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.ProfileResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/admin/profiles/{id}/generate [post]
func (c *ProfileController) generate(g *gin.Context) {
	if c.generator == nil {
		g.JSON(http.StatusServiceUnavailable, gin.H{"error": "profile generation is not configured"})
		return
	}

	id := g.Param("id")
	snap, err := c.loader.Load(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to load snapshot: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stored, err := c.generateForMember(g.Request.Context(), snap, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		logging.Log.Errorf("PROFILE: failed to generate profile for member %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformProfileFromStorage(stored))
}

// @Security AdminToken
// @Summary Regenerate every member's taste profile
// @Tags Profiles
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/admin/profiles/generate [post]
func (c *ProfileController) generateAll(g *gin.Context) {
	if c.generator == nil {
		g.JSON(http.StatusServiceUnavailable, gin.H{"error": "profile generation is not configured"})
		return
	}

	generated, err := c.GenerateAll(g.Request.Context())
	if err != nil {
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, gin.H{"generated": generated})
}

// GenerateAll regenerates every member's profile and reports how many
// succeeded. The scheduler calls this between countdown reveals; one bad
// generation never stops the rest.
func (c *ProfileController) GenerateAll(ctx context.Context) (int, error) {
	if c.generator == nil {
		return 0, nil
	}

	snap, err := c.loader.Load(ctx)
	if err != nil {
		logging.Log.Errorf("PROFILE: failed to load snapshot: %v", err)
		return 0, err
	}

	generated := 0
	for _, m := range snap.Members {
		if _, err := c.generateForMember(ctx, snap, m.ID); err != nil {
			logging.Log.Errorf("PROFILE: failed to generate profile for member %s: %v", m.ID, err)
			continue
		}
		generated++
	}
	logging.Log.Infof("PROFILE: generated %d of %d profiles", generated, len(snap.Members))
	return generated, nil
}

func (c *ProfileController) generateForMember(ctx context.Context, snap *Snapshot, id string) (*storage.MemberProfile, error) {
	var member *scoring.Member
	for i := range snap.Members {
		if snap.Members[i].ID == id {
			member = &snap.Members[i]
			break
		}
	}
	if member == nil {
		return nil, storage.ErrNotFound
	}

	standing := profile.Standing{TotalMembers: len(snap.Members)}
	for _, e := range scoring.Leaderboard(snap.Members, snap.Main, snap.Extended) {
		if e.Member.ID == id {
			standing.Score = e.Score
			standing.Rank = e.Rank
			break
		}
	}

	p, err := c.generator.Generate(ctx, *member, snap.Songs, snap.Main, snap.Extended, standing)
	if err != nil {
		return nil, err
	}

	stored := &storage.MemberProfile{
		MemberID:    id,
		Label:       p.Label,
		Description: p.Description,
		Commentary:  p.Commentary,
	}
	if err := c.profiles.Put(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return stored, nil
}
