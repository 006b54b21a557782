package game

import "github.com/playmatatu/ballpark/internal/config"

// TuningFromConfig builds the match tuning from the loaded configuration.
func TuningFromConfig(cfg *config.Config) Tuning {
	return Tuning{
		Constants:    cfg.PhysicsConstants(),
		Settings:     cfg.RulesSettings(),
		Zone:         cfg.Zone(),
		UmpireMargin: cfg.UmpireMarginM,
		SubSteps:     cfg.SubSteps,
	}
}
