// internal/workers/brands/vet-brand/models.go
package vetbrand

import "creator-pricing-workers/internal/scoring/brandvet"

type Input = brandvet.Input

type Output struct {
	brandvet.Result
	// Proceed is false for high risk brands so the process can stop the deal.
	Proceed  bool   `json:"proceed"`
	CacheKey string `json:"cacheKey"`
}
