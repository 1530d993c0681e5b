package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchpulse/football-sync/internal/platform/logging"
	"github.com/matchpulse/football-sync/internal/platform/resilience"
	"github.com/matchpulse/football-sync/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.football-data.org/v4"
	authTokenHeader = "X-Auth-Token"
	maxBodyBytes    = 6 << 20
	dateLayout      = "2006-01-02"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client issues authenticated calls against the football-data API. Each
// call maps to exactly one upstream request; retry and throttling belong
// to the sync jobs. The circuit breaker only sheds load while the
// upstream is hard-down, it never retries.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ListCompetitions(ctx context.Context) ([]usecase.ExternalCompetition, error) {
	var envelope competitionsEnvelope
	if err := c.doJSON(ctx, "/competitions", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch competitions: %w", err)
	}

	out := make([]usecase.ExternalCompetition, 0, len(envelope.Competitions))
	for _, item := range envelope.Competitions {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			continue
		}
		out = append(out, usecase.ExternalCompetition{
			Code:   code,
			Name:   strings.TrimSpace(item.Name),
			Emblem: strings.TrimSpace(item.Emblem),
		})
	}
	return out, nil
}

func (c *Client) ListMatches(ctx context.Context, competitionCode string, filter usecase.MatchFilter) ([]usecase.ExternalMatch, error) {
	code := strings.TrimSpace(competitionCode)
	if code == "" {
		return nil, fmt.Errorf("%w: competition code is required for match listing", usecase.ErrConfiguration)
	}

	query := map[string]string{}
	if filter.DateFrom != nil {
		query["dateFrom"] = filter.DateFrom.UTC().Format(dateLayout)
	}
	if filter.DateTo != nil {
		query["dateTo"] = filter.DateTo.UTC().Format(dateLayout)
	}
	if len(filter.Statuses) > 0 {
		query["status"] = strings.Join(filter.Statuses, ",")
	}

	var envelope matchesEnvelope
	path := "/competitions/" + url.PathEscape(code) + "/matches"
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matches competition=%s: %w", code, err)
	}

	return c.parseMatches(ctx, envelope)
}

func (c *Client) ListLiveMatches(ctx context.Context, competitionCodes []string) ([]usecase.ExternalMatch, error) {
	query := map[string]string{
		"status": strings.Join([]string{"LIVE", "IN_PLAY", "PAUSED"}, ","),
	}

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, "/matches", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch live matches: %w", err)
	}

	items, err := c.parseMatches(ctx, envelope)
	if err != nil {
		return nil, err
	}
	if len(competitionCodes) == 0 {
		return items, nil
	}

	tracked := make(map[string]struct{}, len(competitionCodes))
	for _, code := range competitionCodes {
		tracked[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	out := make([]usecase.ExternalMatch, 0, len(items))
	for _, item := range items {
		if _, ok := tracked[strings.ToUpper(item.CompetitionCode)]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *Client) GetStandings(ctx context.Context, competitionCode string) ([]usecase.ExternalStanding, error) {
	code := strings.TrimSpace(competitionCode)
	if code == "" {
		return nil, fmt.Errorf("%w: competition code is required for standings", usecase.ErrConfiguration)
	}

	var envelope standingsEnvelope
	path := "/competitions/" + url.PathEscape(code) + "/standings"
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings competition=%s: %w", code, err)
	}

	resolvedCode := firstNonEmpty(strings.TrimSpace(envelope.Competition.Code), code)
	out := make([]usecase.ExternalStanding, 0, 24)
	for _, group := range envelope.Standings {
		// The overall table; HOME/AWAY splits are not cached.
		if !strings.EqualFold(strings.TrimSpace(group.Type), "TOTAL") {
			continue
		}
		for _, row := range group.Table {
			if row.Position <= 0 || row.Team.ID <= 0 {
				continue
			}
			out = append(out, mapStandingRow(resolvedCode, row))
		}
	}
	return out, nil
}

func (c *Client) ListTeams(ctx context.Context, competitionCode string) ([]usecase.ExternalTeam, error) {
	code := strings.TrimSpace(competitionCode)
	if code == "" {
		return nil, fmt.Errorf("%w: competition code is required for team listing", usecase.ErrConfiguration)
	}

	var envelope teamsEnvelope
	path := "/competitions/" + url.PathEscape(code) + "/teams"
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams competition=%s: %w", code, err)
	}

	out := make([]usecase.ExternalTeam, 0, len(envelope.Teams))
	for _, item := range envelope.Teams {
		if item.ID <= 0 {
			continue
		}
		out = append(out, usecase.ExternalTeam{
			ExternalID: item.ID,
			Name:       strings.TrimSpace(item.Name),
			ShortName:  firstNonEmpty(strings.TrimSpace(item.ShortName), strings.TrimSpace(item.TLA)),
			Crest:      strings.TrimSpace(item.Crest),
		})
	}
	return out, nil
}

func (c *Client) GetHeadToHead(ctx context.Context, matchID int64, limit int) ([]usecase.ExternalMatch, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id is required for head-to-head", usecase.ErrConfiguration)
	}

	query := map[string]string{}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	var envelope matchesEnvelope
	path := "/matches/" + strconv.FormatInt(matchID, 10) + "/head2head"
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch head-to-head match_id=%d: %w", matchID, err)
	}

	return c.parseMatches(ctx, envelope)
}

func (c *Client) parseMatches(ctx context.Context, envelope matchesEnvelope) ([]usecase.ExternalMatch, error) {
	out := make([]usecase.ExternalMatch, 0, len(envelope.Matches))
	for _, raw := range envelope.Matches {
		var item matchItem
		if err := sonic.Unmarshal(raw, &item); err != nil {
			c.logger.WarnContext(ctx, "skip undecodable match payload", "error", err)
			continue
		}
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapMatchItem(item, append([]byte(nil), raw...)))
	}
	return out, nil
}

// doJSON performs one authenticated GET. Concurrent identical calls are
// deduplicated; the circuit breaker sheds calls while the upstream is
// persistently failing.
func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.token == "" {
		return fmt.Errorf("%w: missing football data API token", usecase.ErrConfiguration)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode football data payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(authTokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := &usecase.TransportError{
			Err: stderrors.New(sanitizeSensitiveText(err.Error(), c.token)),
		}
		c.logger.WarnContext(ctx, "football data request failed", "url", fullURL, "error", transportErr)
		return nil, transportErr
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, &usecase.TransportError{Err: fmt.Errorf("read response body: %w", readErr)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &usecase.RateLimitError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &usecase.UpstreamError{
			Status: resp.StatusCode,
			Body:   abbreviateBody(raw),
		}
	default:
		return raw, nil
	}
}

// isCircuitFailure decides whether a failure should trip the breaker.
// Rate limiting is a healthy upstream saying slow down, so it does not
// count; client-side 4xx responses do not either.
func isCircuitFailure(err error) bool {
	var transportErr *usecase.TransportError
	if stderrors.As(err, &transportErr) {
		return true
	}
	var upstreamErr *usecase.UpstreamError
	if stderrors.As(err, &upstreamErr) {
		return upstreamErr.Status >= 500
	}
	return false
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return body
}
