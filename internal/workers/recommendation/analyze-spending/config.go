// internal/workers/recommendation/analyze-spending/config.go
package analyzespending

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
