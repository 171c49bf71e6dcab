// internal/workers/pricing/calculate-quick-estimate/config.go
package calculatequickestimate

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
