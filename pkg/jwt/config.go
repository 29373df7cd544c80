package jwt

import (
	"strconv"
	"strings"
	"time"
)

// Config carries JWT settings from the environment.
type Config struct {
	AccessSecret  string `env:"JWT_SECRET,required"`
	RefreshSecret string `env:"JWT_REFRESH_SECRET,required"`
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	AccessExpiration  string `env:"JWT_EXPIRATION" envDefault:"15m"`
	RefreshExpiration string `env:"JWT_REFRESH_EXPIRATION" envDefault:"7d"`
}

// Normalize resolves the string expirations into durations.
func (c *Config) Normalize() {
	c.AccessTTL = ParseTTL(c.AccessExpiration, 15*time.Minute)
	c.RefreshTTL = ParseTTL(c.RefreshExpiration, 7*24*time.Hour)
}

// ParseTTL parses durations like "15m", "1h" or "7d". Unparseable values
// fall back to def.
func ParseTTL(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	// time.ParseDuration has no day unit.
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return def
		}
		return time.Duration(days) * 24 * time.Hour
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
