package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/playmatatu/ballpark/internal/physics"
	"github.com/playmatatu/ballpark/internal/rules"
)

type Config struct {
	// Environment
	Environment string `env:"APP_ENV" envDefault:"development"`

	// Database
	DatabaseURL    string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/ballpark?sslmode=disable"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"false"`

	// Redis
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Server
	Port        string `env:"APP_PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Simulation
	TickRateHz    int     `env:"TICK_RATE_HZ" envDefault:"60"`
	SubSteps      int     `env:"SUB_STEPS" envDefault:"4"`
	UmpireMarginM float64 `env:"UMPIRE_MARGIN_M" envDefault:"0.02"`
	ZoneShape     string  `env:"ZONE_SHAPE" envDefault:"rect"`

	// Rules
	MaxInnings        int `env:"MAX_INNINGS" envDefault:"9"`
	ChallengesPerGame int `env:"CHALLENGES_PER_GAME" envDefault:"2"`
	ExtraInningFrom   int `env:"EXTRA_INNING_FROM" envDefault:"10"`

	// Match lifecycle
	MatchIdleSeconds      int `env:"MATCH_IDLE_SECONDS" envDefault:"900"`
	IdleWorkerPollSeconds int `env:"IDLE_WORKER_POLL_SECONDS" envDefault:"10"`
	SnapshotTTLMinutes    int `env:"SNAPSHOT_TTL_MINUTES" envDefault:"60"`

	// Security
	JWTSecret     string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"12"`

	Physics PhysicsConfig `envPrefix:"PHYS_"`
}

// PhysicsConfig overrides the ball constants. A zero ground offset means the
// ball radius.
type PhysicsConfig struct {
	Gravity           float64 `env:"GRAVITY" envDefault:"9.80665"`
	AirDensity        float64 `env:"AIR_DENSITY" envDefault:"1.225"`
	Circumference     float64 `env:"CIRCUMFERENCE" envDefault:"0.232"`
	Mass              float64 `env:"MASS" envDefault:"0.145"`
	Area              float64 `env:"AREA" envDefault:"0.00426"`
	DragCoefficient   float64 `env:"DRAG_COEFFICIENT" envDefault:"0.35"`
	LiftFactor        float64 `env:"LIFT_FACTOR" envDefault:"1.5"`
	VelocityEpsilon   float64 `env:"VELOCITY_EPSILON" envDefault:"0.1"`
	GroundOffset      float64 `env:"GROUND_OFFSET" envDefault:"0"`
	GroundRestitution float64 `env:"GROUND_RESTITUTION" envDefault:"0.5"`
	GroundFriction    float64 `env:"GROUND_FRICTION" envDefault:"0.9"`
	BatRestitution    float64 `env:"BAT_RESTITUTION" envDefault:"0.55"`
	SwingSpinFactor   float64 `env:"SWING_SPIN_FACTOR" envDefault:"200"`
}

// Load reads .env if present and parses the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TickRateHz < 1 || c.TickRateHz > 1000 {
		return fmt.Errorf("TICK_RATE_HZ %d outside 1..1000", c.TickRateHz)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("SUB_STEPS must be at least 1, got %d", c.SubSteps)
	}
	if c.ZoneShape != string(physics.ZoneRect) && c.ZoneShape != string(physics.ZoneEllipse) {
		return fmt.Errorf("ZONE_SHAPE must be rect or ellipse, got %q", c.ZoneShape)
	}
	if err := c.RulesSettings().Validate(); err != nil {
		return err
	}
	return c.PhysicsConstants().Validate()
}

// PhysicsConstants converts the physics overrides into integrator constants.
func (c *Config) PhysicsConstants() physics.Constants {
	p := c.Physics
	k := physics.DefaultConstants()
	k.Gravity = p.Gravity
	k.AirDensity = p.AirDensity
	k.Circumference = p.Circumference
	k.Mass = p.Mass
	k.Area = p.Area
	k.DragCoefficient = p.DragCoefficient
	k.LiftFactor = p.LiftFactor
	k.VelocityEpsilon = p.VelocityEpsilon
	k.GroundOffset = p.GroundOffset
	if k.GroundOffset == 0 {
		k.GroundOffset = k.Radius()
	}
	k.GroundRestitution = p.GroundRestitution
	k.GroundFriction = p.GroundFriction
	k.BatRestitution = p.BatRestitution
	k.SwingSpinFactor = p.SwingSpinFactor
	return k
}

func (c *Config) RulesSettings() rules.Settings {
	return rules.Settings{
		MaxInnings:        c.MaxInnings,
		ChallengesPerGame: c.ChallengesPerGame,
		ExtraInningFrom:   c.ExtraInningFrom,
	}
}

// Zone is the strike zone umpires call against.
func (c *Config) Zone() physics.Zone {
	z := physics.DefaultZone(c.PhysicsConstants())
	z.Shape = physics.ZoneShape(c.ZoneShape)
	return z
}

func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}

func (c *Config) MatchIdle() time.Duration {
	return time.Duration(c.MatchIdleSeconds) * time.Second
}

func (c *Config) IdlePollInterval() time.Duration {
	return time.Duration(c.IdleWorkerPollSeconds) * time.Second
}

func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLMinutes) * time.Minute
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
