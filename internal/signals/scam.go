package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"creator-pricing-workers/internal/scoring/brandvet"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ScamReportIndex searches creator-submitted scam reports and adds the
// indicators visible in the offer itself. Without a client only the offer
// heuristics run.
type ScamReportIndex struct {
	client *elasticsearch.Client
	index  string
	size   int
}

type scamReport struct {
	BrandName  string   `json:"brand_name"`
	Indicators []string `json:"indicators"`
	Status     string   `json:"status"`
}

type scamSearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source scamReport `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func NewScamReportIndex(client *elasticsearch.Client, index string) *ScamReportIndex {
	return &ScamReportIndex{client: client, index: index, size: 25}
}

func (s *ScamReportIndex) ScamIndicators(ctx context.Context, in brandvet.Input) (*brandvet.ScamSignals, error) {
	var indicators []string
	if s.client != nil {
		reported, err := s.search(ctx, in)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, reported...)
	}
	indicators = append(indicators, brandvet.DetectOfferIndicators(in)...)
	return &brandvet.ScamSignals{Indicators: unique(indicators)}, nil
}

func (s *ScamReportIndex) search(ctx context.Context, in brandvet.Input) ([]string, error) {
	body, err := json.Marshal(buildScamQuery(in))
	if err != nil {
		return nil, err
	}

	size := s.size
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("scam report search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("scam report search failed: %s", res.Status())
	}

	var r scamSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode scam reports: %w", err)
	}

	if r.Hits.Total.Value == 0 {
		return nil, nil
	}
	out := []string{brandvet.IndicatorReportedScam}
	for _, h := range r.Hits.Hits {
		out = append(out, h.Source.Indicators...)
	}
	return out, nil
}

// buildScamQuery matches confirmed reports on the brand name, its website host
// or its handle.
func buildScamQuery(in brandvet.Input) map[string]interface{} {
	should := []interface{}{
		map[string]interface{}{
			"match_phrase": map[string]interface{}{
				"brand_name": strings.TrimSpace(in.BrandName),
			},
		},
	}
	if host := brandvet.WebsiteHost(in.Website); host != "" {
		should = append(should, map[string]interface{}{
			"term": map[string]interface{}{"website_host": host},
		})
	}
	if h := strings.TrimPrefix(strings.TrimSpace(in.Handle), "@"); h != "" {
		should = append(should, map[string]interface{}{
			"term": map[string]interface{}{"handles": strings.ToLower(h)},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"status": "confirmed"}},
				},
			},
		},
	}
}

func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
