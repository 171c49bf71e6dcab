// internal/workers/brands/vet-brand/config.go
package vetbrand

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 20 * time.Second,
	}
}
