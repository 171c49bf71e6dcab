package tier

import (
	"errors"
	"fmt"

	"creator-pricing-workers/internal/models"
)

var ErrUnknownFormat = errors.New("tier: unknown content format")

var formatPremiums = map[string]float64{
	models.FormatStatic:   0,
	models.FormatStory:    0.10,
	models.FormatCarousel: 0.15,
	models.FormatReel:     0.25,
	models.FormatVideo:    0.35,
	models.FormatLive:     0.50,
}

// FormatPremium returns the fractional premium a content format adds on top of the base rate.
func FormatPremium(format string) (float64, error) {
	p, ok := formatPremiums[format]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p, nil
}
