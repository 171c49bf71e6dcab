// internal/workers/contracts/scan-contract/config.go
package scancontract

import "time"

type Config struct {
	Timeout time.Duration
	// MinHealthyScore is the health score at or above which a contract with no
	// high severity flags can be signed as is.
	MinHealthyScore int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		MinHealthyScore: 60,
	}
}
