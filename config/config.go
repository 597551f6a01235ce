package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the engine settings, all overridable from the environment.
type Config struct {
	ServerURL    string // websocket endpoint of the game server
	HTTPPort     string // local port for the UI-facing API
	CachePath    string // SQLite file for the persisted player profile

	ReconnectBase        time.Duration
	ReconnectCap         time.Duration
	ReconnectMaxAttempts int
	PingInterval         time.Duration
}

func FromEnv() Config {
	c := Config{}
	c.ServerURL = getenv("SERVER_URL", "ws://localhost:8080/ws")
	c.HTTPPort = getenv("HTTP_PORT", "4100")
	c.CachePath = getenv("CACHE_PATH", "player.db")
	c.ReconnectBase = time.Duration(getint("RECONNECT_BASE_MS", 1000)) * time.Millisecond
	c.ReconnectCap = time.Duration(getint("RECONNECT_CAP_MS", 30000)) * time.Millisecond
	c.ReconnectMaxAttempts = getint("RECONNECT_MAX_ATTEMPTS", 5)
	c.PingInterval = time.Duration(getint("PING_INTERVAL_SEC", 30)) * time.Second

	// A zero or negative interval would crash the keepalive ticker.
	if c.PingInterval <= 0 {
		c.PingInterval = 30 * time.Second
	}
	if c.ReconnectBase <= 0 {
		c.ReconnectBase = time.Second
	}
	if c.ReconnectCap < c.ReconnectBase {
		c.ReconnectCap = c.ReconnectBase
	}
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
