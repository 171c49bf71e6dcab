// internal/workers/pricing/calculate-price/config.go
package calculateprice

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
