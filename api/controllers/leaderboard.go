package controllers

import (
	"net/http"

	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/live"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type LeaderboardController struct {
	loader         *SnapshotLoader
	hub            *live.Hub
	awardOptions   scoring.AwardOptions
	rankZeroScores bool
	upgrader       websocket.Upgrader
}

func NewLeaderboardController(loader *SnapshotLoader, hub *live.Hub, awardOptions scoring.AwardOptions, rankZeroScores bool) *LeaderboardController {
	return &LeaderboardController{
		loader:         loader,
		hub:            hub,
		awardOptions:   awardOptions,
		rankZeroScores: rankZeroScores,
		upgrader: websocket.Upgrader{
			// The API already serves cross-origin; the socket is watch-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (c *LeaderboardController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/leaderboard", c.getLeaderboard)
	engine.GET("/api/leaderboard/:id/matches", c.getMatches)
	engine.GET("/api/awards", c.getAwards)
	engine.GET("/api/live", c.live)
}

// @Summary Get the current leaderboard
// @Tags Leaderboard
// @Produce json
// @Success 200 {object} models.LeaderboardResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/leaderboard [get]
func (c *LeaderboardController) getLeaderboard(g *gin.Context) {
	snap, err := c.loader.Load(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load snapshot: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, buildLeaderboardResponse(snap, c.rankZeroScores))
}

// @Summary Get one member's matched picks with points
// @Tags Leaderboard
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.MemberMatchesResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/leaderboard/{id}/matches [get]
func (c *LeaderboardController) getMatches(g *gin.Context) {
	id := g.Param("id")

	snap, err := c.loader.Load(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load snapshot: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var member *scoring.Member
	for i := range snap.Members {
		if snap.Members[i].ID == id {
			member = &snap.Members[i]
			break
		}
	}
	if member == nil {
		g.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}

	extendedOpen := len(snap.Extended) > 0
	matches := scoring.Matches(*member, snap.Main, snap.Extended, snap.Songs)
	response := models.MemberMatchesResponse{
		MemberID: member.ID,
		Name:     member.Name,
		Score:    scoring.Score(*member, snap.Main, snap.Extended),
		Matches:  make([]models.MatchResponse, 0, len(matches)),
	}
	for _, m := range matches {
		response.Matches = append(response.Matches, models.MatchResponse{
			SongID:   m.Song.ID,
			Title:    m.Song.Title,
			Artist:   m.Song.Artist,
			Rank:     m.Pick.Rank,
			Position: m.Result.Position,
			Points:   scoring.Points(m.Result.Position, extendedOpen),
		})
	}
	g.JSON(http.StatusOK, response)
}

// @Summary Get the end-of-countdown awards
// @Tags Leaderboard
// @Produce json
// @Success 200 {array} models.AwardResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/awards [get]
func (c *LeaderboardController) getAwards(g *gin.Context) {
	snap, err := c.loader.Load(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load snapshot: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	awards := scoring.Awards(snap.Members, snap.Songs, snap.Main, snap.Extended, c.awardOptions)
	responses := make([]models.AwardResponse, 0, len(awards))
	for _, a := range awards {
		responses = append(responses, models.AwardResponse{
			ID:          a.ID,
			Emoji:       a.Emoji,
			Title:       a.Title,
			Description: a.Description,
			WinnerID:    a.WinnerID,
			WinnerName:  a.WinnerName,
			Details:     a.Details,
		})
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Watch the leaderboard over a websocket
// @Tags Leaderboard
// @Success 101
// @Router /api/live [get]
func (c *LeaderboardController) live(g *gin.Context) {
	conn, err := c.upgrader.Upgrade(g.Writer, g.Request, nil)
	if err != nil {
		logging.Log.Errorf("LIVE: websocket upgrade failed: %v", err)
		return
	}

	client := live.NewClient(conn)
	c.hub.Register(client)

	// New watchers get the current standings straight away
	snap, err := c.loader.Load(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LIVE: failed to load snapshot for new client: %v", err)
		return
	}
	client.Send("leaderboard", buildLeaderboardResponse(snap, c.rankZeroScores))
}
