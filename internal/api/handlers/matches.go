package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/ballpark/internal/auth"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/rules"
	"github.com/playmatatu/ballpark/internal/teams"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, teams.ErrUnknownTeam), errors.Is(err, game.ErrSameTeam):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrMatchOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ListTeams returns the club registry.
func ListTeams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"teams": teams.All()})
}

// CreateMatch starts a match and returns a control token for each side.
func CreateMatch(gm *game.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Home string `json:"home" binding:"required"`
			Away string `json:"away" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "home and away are required"})
			return
		}

		m, err := gm.CreateMatch(c.Request.Context(), req.Home, req.Away)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		tokens := gin.H{}
		for _, side := range []rules.Side{rules.Home, rules.Away} {
			tok, err := auth.IssueSideToken(cfg.JWTSecret, m.ID, side, cfg.TokenTTL())
			if err != nil {
				log.Printf("[MATCH] Failed to issue %s token for %s: %v", side, m.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
				return
			}
			tokens[side.String()] = tok
		}

		c.Header("X-Match-ID", m.ID)
		c.JSON(http.StatusCreated, gin.H{
			"match":      m.Snapshot(),
			"home_token": tokens[rules.Home.String()],
			"away_token": tokens[rules.Away.String()],
		})
	}
}

// GetMatch returns the state of a hosted match, or its last cached state once
// it has left memory.
func GetMatch(gm *game.Manager, store *game.SQLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if m, err := gm.GetMatch(id); err == nil {
			c.JSON(http.StatusOK, gin.H{"match": m.Snapshot(), "narrative": m.Narrative()})
			return
		}

		snap, err := store.LoadSnapshot(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": snap})
	}
}

// GetMatchEvents returns the persisted event log of a match.
func GetMatchEvents(store *game.SQLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		events, err := store.MatchEvents(c.Request.Context(), id)
		if err != nil {
			log.Printf("[DB] Failed to fetch events for %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		challenges, err := store.Challenges(c.Request.Context(), id)
		if err != nil {
			log.Printf("[DB] Failed to fetch challenges for %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events, "challenges": challenges})
	}
}
