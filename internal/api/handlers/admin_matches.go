package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/ballpark/internal/admin"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/middleware"
)

// GetAdminMatches returns the matches hosted right now and a page of the
// persisted match history.
func GetAdminMatches(gm *game.Manager, store *game.SQLStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := page(c)
		history, err := store.RecentMatches(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to fetch matches: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"live":    gm.ListMatches(),
			"history": history,
			"limit":   limit,
			"offset":  offset,
		})
	}
}

// AbandonAdminMatch ends a live match without a result.
func AbandonAdminMatch(db *sqlx.DB, gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		adminPhone := c.GetString(middleware.AdminPhoneKey)
		id := c.Param("id")
		route := "/api/v1/admin/matches/" + id + "/abandon"

		snap, err := gm.Abandon(ctx, id)
		if err != nil {
			admin.LogAdminAction(ctx, db, adminPhone, c.ClientIP(), route, "abandon_match", map[string]interface{}{"match_id": id, "error": err.Error()}, false)
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		gm.Evict(ctx, id)

		admin.LogAdminAction(ctx, db, adminPhone, c.ClientIP(), route, "abandon_match", map[string]interface{}{"match_id": id}, true)
		c.JSON(http.StatusOK, gin.H{"match": snap})
	}
}
