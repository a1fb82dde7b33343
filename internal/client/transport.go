package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/ratelimiter"

	"github.com/Belphemur/ShowFinder/internal/config"
)

// newTransport builds the round tripper chain used for every TVmaze request:
// rate limiter -> compression -> user agent -> base transport (with optional proxy).
func newTransport(cfg *config.Config) http.RoundTripper {
	logger := config.GetLogger()

	// Clone DefaultTransport to preserve its pooling, HTTP/2 and dial timeouts
	base := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			base.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	var rt http.RoundTripper = newCompressionTransport(&userAgentTransport{next: base, userAgent: userAgent})

	if cfg.RateLimit.Requests > 0 {
		period := parseDuration(cfg.RateLimit.Period, 10*time.Second, "rate_limit.period")
		maxWait := parseDuration(cfg.RateLimit.MaxWait, 0, "rate_limit.max_wait")

		limiter := ratelimiter.NewBurstyBuilder[*http.Response](uint(cfg.RateLimit.Requests), period).
			WithMaxWaitTime(maxWait).
			Build()
		rt = failsafehttp.NewRoundTripper(rt, limiter)

		logger.Debug().
			Int("requests", cfg.RateLimit.Requests).
			Dur("period", period).
			Dur("max_wait", maxWait).
			Msg("Outbound rate limiting enabled")
	}

	return rt
}

// userAgentTransport sets the User-Agent header on requests that do not carry one
type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}
