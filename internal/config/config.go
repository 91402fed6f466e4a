// Package config resolves textroomd's startup configuration from flags,
// environment variables, and an optional .env file, in that precedence
// order, the way the teacher's CLI layers flags over envOrDefault over a
// dotfile (internal/cli/root.go), with github.com/joho/godotenv loading the
// dotfile the way RoseWrightdev-Video-Conferencing's session service does.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults match spec §6.
const (
	DefaultPort         = 9339
	DefaultHost         = "0.0.0.0"
	DefaultPingInterval = 120 * time.Second
)

// Server is the resolved configuration textroomd runs with.
type Server struct {
	Host         string
	Port         int
	PingInterval time.Duration
}

// Load reads a .env file at path if present (a missing file is not an
// error) and returns defaults for anything not set by an environment
// variable. Flags take precedence over all of this; callers apply cobra
// flag values on top of the returned Server.
func Load(dotenvPath string) Server {
	_ = godotenv.Load(dotenvPath)

	cfg := Server{
		Host:         DefaultHost,
		Port:         DefaultPort,
		PingInterval: DefaultPingInterval,
	}
	if v, ok := envString("TEXTROOM_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := envInt("TEXTROOM_PORT"); ok {
		cfg.Port = v
	}
	if v, ok := envDuration("TEXTROOM_PING_INTERVAL"); ok {
		cfg.PingInterval = v
	}
	return cfg
}

func envString(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envInt(key string) (int, bool) {
	v, ok := envString(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v, ok := envString(key)
	if !ok {
		return 0, false
	}
	// Bare integers are treated as seconds, matching the original's
	// PING_INTERVAL env var being a plain number of seconds.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, true
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
