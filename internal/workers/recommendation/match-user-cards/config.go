// internal/workers/recommendation/match-user-cards/config.go
package matchusercards

import "time"

type Config struct {
	DefaultTopN int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultTopN: 5,
		Timeout:     30 * time.Second,
	}
}
