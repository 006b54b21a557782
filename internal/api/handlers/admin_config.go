package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/ballpark/internal/admin"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/middleware"
)

// GetAdminRuntimeConfig returns all runtime config entries and the tuning new
// matches are created with.
func GetAdminRuntimeConfig(db *sqlx.DB, gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		configs, err := admin.GetAllRuntimeConfig(c.Request.Context(), db)
		if err != nil {
			log.Printf("[ADMIN] Failed to fetch runtime config: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch config"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"configs": configs, "tuning": gm.Tuning()})
	}
}

// UpdateAdminRuntimeConfig updates one runtime config value and retunes the
// manager. Matches already running keep their constants.
func UpdateAdminRuntimeConfig(db *sqlx.DB, cfg *config.Config, gm *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		adminPhone := c.GetString(middleware.AdminPhoneKey)
		key := c.Param("key")
		route := "/api/v1/admin/config/" + key

		var req struct {
			Value string `json:"value" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Value is required"})
			return
		}
		details := map[string]interface{}{"key": key, "value": req.Value}

		if err := admin.UpdateRuntimeConfigValue(ctx, db, cfg, key, req.Value, adminPhone); err != nil {
			log.Printf("[ADMIN] Failed to update config %s: %v", key, err)
			admin.LogAdminAction(ctx, db, adminPhone, c.ClientIP(), route, "update_config", details, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := admin.ApplyRuntimeConfigToConfig(ctx, db, cfg); err != nil {
			log.Printf("[ADMIN] Warning: failed to apply runtime config: %v", err)
		}
		if err := gm.SetTuning(game.TuningFromConfig(cfg)); err != nil {
			log.Printf("[ADMIN] Warning: tuning rejected: %v", err)
		}

		admin.LogAdminAction(ctx, db, adminPhone, c.ClientIP(), route, "update_config", details, true)
		c.JSON(http.StatusOK, gin.H{"ok": true, "tuning": gm.Tuning()})
	}
}
