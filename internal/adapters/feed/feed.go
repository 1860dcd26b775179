// Package feed fetches players and standings from the externally
// defined REST APIs and falls back to the bundled datasets when a
// fetch or decode fails. Failures never propagate past this package as
// crashes; callers always receive a usable list.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultFetchTimeout = 10 * time.Second

	sourcePlayers   = "players"
	sourceStandings = "standings"
)

// Client talks to the players and standings APIs.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the API base path.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets the client used for feed fetches.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient constructs a feed client with default configuration.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// playerRecord mirrors the players API schema and the bundled dataset.
type playerRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	TeamID   string `json:"team_id"`
	Age      int    `json:"age"`
	Grade    string `json:"grade"`
	LogoURL  string `json:"logo_url"`
}

func (p playerRecord) entity() model.Entity {
	return model.Entity{
		ID:       p.ID,
		Kind:     model.KindPlayer,
		Name:     p.Name,
		Position: p.Position,
		Team:     p.Team,
		TeamID:   p.TeamID,
		Age:      p.Age,
		Grade:    p.Grade,
		LogoURL:  p.LogoURL,
	}
}

// playersResponse mirrors GET {base}/players.
type playersResponse struct {
	Top100  []playerRecord `json:"top100"`
	Players []playerRecord `json:"players"`
}

// Players returns the top-100 seed list and the add-player pool. Any
// fetch or decode failure falls back to the bundled dataset, in which
// case the pool equals the seed list.
func (c *Client) Players(ctx context.Context) (top100, pool []model.Entity) {
	if c.log == nil {
		c.log = logger.Get()
	}

	var resp playersResponse
	if err := c.getJSON(ctx, sourcePlayers, "/players", &resp); err != nil {
		c.log.Warn(ctx, "players fetch failed; serving bundled top 100", logger.Error(err))
		metrics.RecordFeedFallback(sourcePlayers)
		fallback := FallbackPlayers()
		return fallback, fallback
	}

	top100 = make([]model.Entity, 0, len(resp.Top100))
	for _, p := range resp.Top100 {
		top100 = append(top100, p.entity())
	}
	pool = make([]model.Entity, 0, len(resp.Players))
	for _, p := range resp.Players {
		pool = append(pool, p.entity())
	}
	if len(pool) == 0 {
		pool = top100
	}
	return top100, pool
}

// teamRecord mirrors the bundled team reference data.
type teamRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FullName   string   `json:"full_name"`
	Conference string   `json:"conference"`
	Division   string   `json:"division"`
	Colors     []string `json:"colors"`
	LogoURL    string   `json:"logo_url"`
}

func (t teamRecord) entity() model.Entity {
	return model.Entity{
		ID:         t.ID,
		Kind:       model.KindTeam,
		Name:       t.Name,
		FullName:   t.FullName,
		Conference: t.Conference,
		Division:   t.Division,
		Colors:     t.Colors,
		LogoURL:    t.LogoURL,
	}
}

// standingRecord mirrors one row of GET {base}/standings.
type standingRecord struct {
	TeamID         string `json:"team_id"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Record         string `json:"record"`
	ConferenceRank int    `json:"conference_rank"`
}

// Teams returns the 32 reference teams with live records merged in and
// sorted into the default order (wins desc, ties by losses asc). When
// the standings fetch fails the reference order is served as-is.
func (c *Client) Teams(ctx context.Context) []model.Entity {
	if c.log == nil {
		c.log = logger.Get()
	}

	teams := FallbackTeams()

	var standings []standingRecord
	if err := c.getJSON(ctx, sourceStandings, "/standings", &standings); err != nil {
		c.log.Warn(ctx, "standings fetch failed; serving reference order", logger.Error(err))
		metrics.RecordFeedFallback(sourceStandings)
		return teams
	}

	byID := make(map[string]standingRecord, len(standings))
	for _, s := range standings {
		byID[s.TeamID] = s
	}
	for i := range teams {
		if s, ok := byID[teams[i].ID]; ok {
			teams[i].Wins = s.Wins
			teams[i].Losses = s.Losses
			teams[i].Record = s.Record
			teams[i].ConferenceRank = s.ConferenceRank
		}
	}
	SortByRecord(teams)
	return teams
}

// getJSON performs one GET against the base URL and decodes the body.
func (c *Client) getJSON(ctx context.Context, source, path string, v any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: no base url configured", ErrBadStatus)
	}
	start := time.Now()

	url, err := JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordFeedFetch(source, "error")
		return err
	}
	defer resp.Body.Close()

	metrics.RecordFeedLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		metrics.RecordFeedFetch(source, "bad_status")
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		metrics.RecordFeedFetch(source, "decode_error")
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	metrics.RecordFeedFetch(source, "ok")
	return nil
}
