package signals

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	commonhttp "creator-pricing-workers/internal/common/http"
	"creator-pricing-workers/internal/scoring/brandvet"
)

// SocialLookup reads public profile stats from the social data API.
type SocialLookup struct {
	client  *commonhttp.Client
	baseURL string
	clock   func() time.Time
}

type profileResponse struct {
	Followers int       `json:"followers"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	PostCount int       `json:"postCount"`
}

func NewSocialLookup(client *commonhttp.Client, baseURL string) *SocialLookup {
	return &SocialLookup{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		clock:   time.Now,
	}
}

func (s *SocialLookup) LookupSocial(ctx context.Context, in brandvet.Input) (*brandvet.SocialSignals, error) {
	handle := handleFor(in.Handle, in.BrandName)
	if handle == "" {
		return &brandvet.SocialSignals{Found: false}, nil
	}

	endpoint := fmt.Sprintf("%s/v1/profiles/%s/%s", s.baseURL, url.PathEscape(in.Platform), url.PathEscape(handle))

	var p profileResponse
	err := s.client.GetJSON(ctx, endpoint, &p)
	if errors.Is(err, commonhttp.ErrNotFound) {
		return &brandvet.SocialSignals{Found: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("social lookup for %s/%s: %w", in.Platform, handle, err)
	}

	return &brandvet.SocialSignals{
		Found:            true,
		Followers:        p.Followers,
		Verified:         p.Verified,
		AccountAgeMonths: monthsBetween(p.CreatedAt, s.clock()),
		PostCount:        p.PostCount,
	}, nil
}
