// Package config loads process settings from the environment and bot tuning
// from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingKey    = errors.New("KEY is not set")
	ErrMissingServer = errors.New("SERVER is not set")
	ErrInvalidMode   = errors.New("MODE must be training or arena")
)

const (
	ModeTraining = "training"
	ModeArena    = "arena"
)

type Settings struct {
	Server      string // Vindinium server URL
	Key         string // bot API key
	HeroName    string // our hero's name in local games, defaults to the bot name
	Bot         string // random, miner, aggressive, minimax or mole
	Mode        string // training or arena
	Map         string // training map, m1 to m6
	Turns       int    // training turns per hero
	Depth       int    // minimax plies, overrides the tuning file when set
	OpenBrowser bool
	Debug       bool
	TuningFile  string // optional YAML bot tuning
	ListenAddr  string // local server address
}

func Default() Settings {
	return Settings{
		Bot:         "miner",
		Mode:        ModeTraining,
		Map:         "m2",
		Turns:       10,
		OpenBrowser: true,
		ListenAddr:  ":9000",
	}
}

// Load reads .env style files (missing files are skipped) and then the
// process environment. Values already in the environment win.
func Load(files ...string) (Settings, error) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Default()
	cfg.Server = strings.TrimSuffix(getEnv("SERVER", cfg.Server), "/")
	cfg.Key = getEnv("KEY", cfg.Key)
	cfg.HeroName = getEnv("HERO_NAME", cfg.HeroName)
	cfg.Bot = strings.ToLower(getEnv("BOT", cfg.Bot))
	cfg.Mode = strings.ToLower(getEnv("MODE", cfg.Mode))
	cfg.Map = getEnv("MAP", cfg.Map)
	cfg.TuningFile = getEnv("TUNING_FILE", cfg.TuningFile)
	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.OpenBrowser = getEnvBool("OPEN_BROWSER", cfg.OpenBrowser)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)

	var err error
	if cfg.Turns, err = getEnvInt("N_TURNS", cfg.Turns); err != nil {
		return Settings{}, err
	}
	if cfg.Depth, err = getEnvInt("DEPTH", cfg.Depth); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// Validate checks the settings needed to play on a remote server.
func (s Settings) Validate() error {
	if s.Key == "" {
		return ErrMissingKey
	}
	if s.Server == "" {
		return ErrMissingServer
	}
	if s.Mode != ModeTraining && s.Mode != ModeArena {
		return fmt.Errorf("%w: got %q", ErrInvalidMode, s.Mode)
	}
	if s.Turns <= 0 {
		return fmt.Errorf("N_TURNS must be positive, got %d", s.Turns)
	}
	return nil
}

// Log prints the settings with the key masked.
func (s Settings) Log() {
	log.Info().
		Str("server", s.Server).
		Str("key", MaskKey(s.Key)).
		Str("hero", s.HeroName).
		Str("bot", s.Bot).
		Str("mode", s.Mode).
		Str("map", s.Map).
		Int("turns", s.Turns).
		Int("depth", s.Depth).
		Bool("open_browser", s.OpenBrowser).
		Bool("debug", s.Debug).
		Str("tuning", s.TuningFile).
		Msg("settings")
}

// DisplayName is the name our hero plays under in local games.
func (s Settings) DisplayName() string {
	if s.HeroName != "" {
		return s.HeroName
	}
	return s.Bot
}

func MaskKey(key string) string {
	if len(key) > 4 {
		return key[:4] + "****"
	}
	return "****"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}
