package admin

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/models"
)

// GetAllRuntimeConfig returns all runtime config entries
func GetAllRuntimeConfig(ctx context.Context, db *sqlx.DB) ([]models.RuntimeConfig, error) {
	var configs []models.RuntimeConfig
	err := db.SelectContext(ctx, &configs, `
		SELECT key, value, value_type, description, updated_by, updated_at
		FROM runtime_config
		ORDER BY key
	`)
	return configs, err
}

// GetRuntimeConfigValue returns a single runtime config value
func GetRuntimeConfigValue(ctx context.Context, db *sqlx.DB, key string) (*models.RuntimeConfig, error) {
	var cfg models.RuntimeConfig
	err := db.GetContext(ctx, &cfg, `SELECT key, value, value_type, description, updated_by, updated_at FROM runtime_config WHERE key=$1`, key)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateValue checks value against a runtime config type.
func ValidateValue(valueType, value string) error {
	switch valueType {
	case "int":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
	case "float":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("invalid float value: %s", value)
		}
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid boolean value: %s (must be 'true' or 'false')", value)
		}
	}
	return nil
}

// UpdateRuntimeConfigValue updates a single runtime config value after
// checking both its type and that the resulting configuration is valid.
func UpdateRuntimeConfigValue(ctx context.Context, db *sqlx.DB, cfg *config.Config, key, value, adminPhone string) error {
	existing, err := GetRuntimeConfigValue(ctx, db, key)
	if err != nil {
		return fmt.Errorf("config key not found: %s", key)
	}
	if err := ValidateValue(existing.ValueType, value); err != nil {
		return err
	}

	trial := *cfg
	if !ApplyOverride(&trial, key, value) {
		return fmt.Errorf("config key %s is not tunable", key)
	}
	if err := trial.Validate(); err != nil {
		return fmt.Errorf("rejected %s=%s: %w", key, value, err)
	}

	_, err = db.ExecContext(ctx, `
		UPDATE runtime_config SET value=$1, updated_by=$2, updated_at=NOW() WHERE key=$3
	`, value, adminPhone, key)
	return err
}

// ApplyRuntimeConfigToConfig loads runtime config from DB and applies the
// overrides to cfg. A set of overrides that leaves cfg invalid is discarded.
func ApplyRuntimeConfigToConfig(ctx context.Context, db *sqlx.DB, cfg *config.Config) error {
	configs, err := GetAllRuntimeConfig(ctx, db)
	if err != nil {
		return err
	}

	next := *cfg
	applied := 0
	for _, c := range configs {
		if ApplyOverride(&next, c.Key, c.Value) {
			applied++
		}
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("runtime config invalid: %w", err)
	}
	*cfg = next

	log.Printf("[CONFIG] Applied %d runtime config overrides from database", applied)
	return nil
}

// ApplyOverride sets one tunable key on cfg. It reports false for unknown
// keys and unparsable values, leaving cfg unchanged.
func ApplyOverride(cfg *config.Config, key, value string) bool {
	if p, ok := floatKeys(cfg)[key]; ok {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		*p = v
		return true
	}
	if p, ok := intKeys(cfg)[key]; ok {
		v, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		*p = v
		return true
	}
	if key == "zone_shape" {
		cfg.ZoneShape = value
		return true
	}
	return false
}

func floatKeys(cfg *config.Config) map[string]*float64 {
	p := &cfg.Physics
	return map[string]*float64{
		"phys_gravity":            &p.Gravity,
		"phys_air_density":        &p.AirDensity,
		"phys_drag_coefficient":   &p.DragCoefficient,
		"phys_lift_factor":        &p.LiftFactor,
		"phys_velocity_epsilon":   &p.VelocityEpsilon,
		"phys_ground_restitution": &p.GroundRestitution,
		"phys_ground_friction":    &p.GroundFriction,
		"phys_bat_restitution":    &p.BatRestitution,
		"phys_swing_spin_factor":  &p.SwingSpinFactor,
		"umpire_margin_m":         &cfg.UmpireMarginM,
	}
}

func intKeys(cfg *config.Config) map[string]*int {
	return map[string]*int{
		"sub_steps":           &cfg.SubSteps,
		"max_innings":         &cfg.MaxInnings,
		"challenges_per_game": &cfg.ChallengesPerGame,
		"extra_inning_from":   &cfg.ExtraInningFrom,
		"match_idle_seconds":  &cfg.MatchIdleSeconds,
	}
}
