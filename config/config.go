package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"room-reservation-backend/internal/parse"
	"room-reservation-backend/internal/schedule"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Rooms      []RoomConfig     `yaml:"rooms"`
	Reminder   ReminderConfig   `yaml:"reminder"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port             int      `yaml:"port"`
	RateLimitPerSec  float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst   int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds  int      `yaml:"cache_ttl_seconds"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// WindowConfig is a slot window in "HH:MM" labels; End may be "24:00".
type WindowConfig struct {
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	StepMinutes int    `yaml:"step_minutes"`
}

// ScheduleConfig holds the selectable start and end slot windows.
type ScheduleConfig struct {
	StartWindow WindowConfig `yaml:"start_window"`
	EndWindow   WindowConfig `yaml:"end_window"`
	Timezone    string       `yaml:"timezone"`

	Start    schedule.Window `yaml:"-"`
	End      schedule.Window `yaml:"-"`
	Location *time.Location  `yaml:"-"`
}

// RoomConfig declares one bookable room.
type RoomConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// ReminderConfig controls push reminders before a reservation starts.
type ReminderConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	LeadMinutes     int           `yaml:"lead_minutes"`
	Interval        time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitPerSec <= 0 {
		c.Server.RateLimitPerSec = 10
	}
	if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = 5
	}
	if c.Server.CacheTTLSeconds <= 0 {
		c.Server.CacheTTLSeconds = 300
	}
	if len(c.Server.CORSAllowOrigins) == 0 {
		c.Server.CORSAllowOrigins = []string{"*"}
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "reservations.db"
	}

	if c.Schedule.StartWindow == (WindowConfig{}) {
		c.Schedule.StartWindow = WindowConfig{Start: "08:00", End: "23:00", StepMinutes: 15}
	}
	if c.Schedule.EndWindow == (WindowConfig{}) {
		c.Schedule.EndWindow = WindowConfig{Start: "09:00", End: "24:00", StepMinutes: 15}
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "Asia/Tokyo"
	}

	if c.Reminder.IntervalSeconds <= 0 {
		c.Reminder.IntervalSeconds = 60
	}
	c.Reminder.Interval = time.Duration(c.Reminder.IntervalSeconds) * time.Second
	if c.Reminder.LeadMinutes <= 0 {
		c.Reminder.LeadMinutes = 15
	}

	if c.Push.TTL <= 0 {
		c.Push.TTL = 3600
	}
	if c.WorkerPool.Size <= 0 {
		c.WorkerPool.Size = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration and resolves the derived fields.
func (c *Config) Validate() error {
	var err error
	if c.Schedule.Start, err = c.Schedule.StartWindow.window(); err != nil {
		return fmt.Errorf("start_window: %w", err)
	}
	if c.Schedule.End, err = c.Schedule.EndWindow.window(); err != nil {
		return fmt.Errorf("end_window: %w", err)
	}
	if c.Schedule.Location, err = time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Schedule.Timezone, err)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn must be set")
	}

	if len(c.Rooms) == 0 {
		return errors.New("at least one room must be configured")
	}
	seen := make(map[string]bool, len(c.Rooms))
	for i := range c.Rooms {
		parsed, err := parse.ParseRoomID(c.Rooms[i].ID)
		if err != nil {
			return err
		}
		id := parsed.ID()
		if seen[id] {
			return fmt.Errorf("duplicate room id %q", id)
		}
		seen[id] = true
		c.Rooms[i].ID = id
		if c.Rooms[i].Label == "" {
			c.Rooms[i].Label = id
		}
	}

	if c.Reminder.Enabled && (c.Push.PublicKey == "" || c.Push.PrivateKey == "") {
		return errors.New("reminder.enabled requires push.vapid_public_key and push.vapid_private_key")
	}
	return nil
}

func (w WindowConfig) window() (schedule.Window, error) {
	return schedule.NewWindow(w.Start, w.End, w.StepMinutes)
}
