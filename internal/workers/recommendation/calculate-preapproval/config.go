// internal/workers/recommendation/calculate-preapproval/config.go
package calculatepreapproval

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
