// internal/workers/pricing/calculate-deal-quality/config.go
package calculatedealquality

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
