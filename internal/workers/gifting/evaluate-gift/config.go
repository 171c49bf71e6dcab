// internal/workers/gifting/evaluate-gift/config.go
package evaluategift

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
