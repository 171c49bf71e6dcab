package signals

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	commonhttp "creator-pricing-workers/internal/common/http"
	"creator-pricing-workers/internal/scoring/brandvet"
)

// WebsiteProber checks that the brand site answers, whether it is served over
// HTTPS, whether it has a contact page and how old its domain registration is.
type WebsiteProber struct {
	client   *commonhttp.Client
	rdapBase string
	clock    func() time.Time
}

type rdapDomain struct {
	Events []struct {
		Action string    `json:"eventAction"`
		Date   time.Time `json:"eventDate"`
	} `json:"events"`
}

func NewWebsiteProber(client *commonhttp.Client, rdapBaseURL string) *WebsiteProber {
	return &WebsiteProber{
		client:   client,
		rdapBase: strings.TrimRight(rdapBaseURL, "/"),
		clock:    time.Now,
	}
}

func (p *WebsiteProber) ProbeWebsite(ctx context.Context, in brandvet.Input) (*brandvet.WebsiteSignals, error) {
	addr := siteAddress(in.Website)
	if addr == "" {
		return &brandvet.WebsiteSignals{Exists: false}, nil
	}

	home, err := p.reach(ctx, addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// unreachable over both schemes: the site does not exist in any useful sense
		return &brandvet.WebsiteSignals{Exists: false}, nil
	}

	out := &brandvet.WebsiteSignals{
		Exists: true,
		HTTPS:  home.Scheme == "https",
	}

	contact := *home
	contact.Path = "/contact"
	contact.RawQuery = ""
	if status, _, err := p.client.Status(ctx, contact.String()); err == nil && status < 400 {
		out.HasContactPage = true
	}

	host := strings.TrimPrefix(home.Hostname(), "www.")
	out.EmailDomainMatches = emailMatchesHost(in.ContactEmail, host)

	if registered, ok := p.registeredAt(ctx, host); ok {
		out.DomainAgeMonths = monthsBetween(registered, p.clock())
	}
	return out, nil
}

// reach tries https first, then http, and returns the URL that finally answered.
func (p *WebsiteProber) reach(ctx context.Context, addr string) (*url.URL, error) {
	var lastErr error
	for _, scheme := range []string{"https", "http"} {
		status, final, err := p.client.Status(ctx, scheme+"://"+addr)
		if err != nil {
			lastErr = err
			continue
		}
		if status >= 400 {
			lastErr = fmt.Errorf("%s://%s returned %d", scheme, addr, status)
			continue
		}
		return url.Parse(final)
	}
	return nil, lastErr
}

func (p *WebsiteProber) registeredAt(ctx context.Context, host string) (time.Time, bool) {
	if p.rdapBase == "" || host == "" {
		return time.Time{}, false
	}
	var d rdapDomain
	if err := p.client.GetJSON(ctx, p.rdapBase+"/domain/"+url.PathEscape(host), &d); err != nil {
		return time.Time{}, false
	}
	for _, e := range d.Events {
		if e.Action == "registration" {
			return e.Date, true
		}
	}
	return time.Time{}, false
}

// emailMatchesHost accepts the site's own domain or any subdomain of it.
func emailMatchesHost(email, host string) bool {
	domain := brandvet.EmailDomain(email)
	if domain == "" || host == "" {
		return false
	}
	return domain == host || strings.HasSuffix(domain, "."+host)
}

// siteAddress keeps the port so probes hit the exact host the brand gave.
func siteAddress(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Host)
}
