package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matchpulse/football-sync/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 2 * time.Second,
	})
}

func TestClient_ListMatches_SendsAuthAndFilters(t *testing.T) {
	t.Parallel()

	var gotToken, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Auth-Token")
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"matches":[
			{"id":101,"utcDate":"2026-08-30T14:00:00Z","status":"TIMED","matchday":3,
			 "competition":{"code":"PL","name":"Premier League"},
			 "homeTeam":{"id":57,"name":"Arsenal","crest":"a.png"},
			 "awayTeam":{"id":61,"name":"Chelsea","crest":"c.png"},
			 "score":{"winner":null,"fullTime":{"home":null,"away":null},"halfTime":{"home":null,"away":null}}}
		]}`))
	})

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)
	items, err := client.ListMatches(context.Background(), "PL", usecase.MatchFilter{
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}

	if gotToken != "test-token" {
		t.Fatalf("expected auth token header, got %q", gotToken)
	}
	if gotQuery != "dateFrom=2026-08-30&dateTo=2026-09-02" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(items) != 1 || items[0].ExternalID != 101 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].CompetitionCode != "PL" || items[0].HomeTeamName != "Arsenal" {
		t.Fatalf("unexpected mapping: %+v", items[0])
	}
	if len(items[0].RawPayload) == 0 {
		t.Fatal("expected raw payload to be retained")
	}
}

func TestClient_ListMatches_RequiresCompetitionCode(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.ListMatches(context.Background(), " ", usecase.MatchFilter{})
	if !errors.Is(err, usecase.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestClient_MissingTokenIsConfigurationError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected")
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{BaseURL: server.URL})
	_, err := client.ListCompetitions(context.Background())
	if !errors.Is(err, usecase.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestClient_RateLimitedResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetStandings(context.Background(), "BL1")
	var rateErr *usecase.RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rateErr.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", rateErr.Status)
	}
}

func TestClient_UpstreamErrorCarriesStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})

	_, err := client.ListTeams(context.Background(), "SA")
	var upstreamErr *usecase.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if upstreamErr.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", upstreamErr.Status)
	}
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Token:   "test-token",
		Timeout: 200 * time.Millisecond,
	})

	_, err := client.ListCompetitions(context.Background())
	var transportErr *usecase.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestClient_ListLiveMatches_FiltersToTrackedCompetitions(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"matches":[
			{"id":1,"utcDate":"2026-08-31T14:00:00Z","status":"IN_PLAY","minute":55,
			 "competition":{"code":"PL","name":"Premier League"},
			 "homeTeam":{"id":57,"name":"Arsenal"},"awayTeam":{"id":61,"name":"Chelsea"},
			 "score":{"winner":null,"fullTime":{"home":1,"away":0},"halfTime":{"home":1,"away":0}}},
			{"id":2,"utcDate":"2026-08-31T14:00:00Z","status":"IN_PLAY",
			 "competition":{"code":"WC","name":"World Cup"},
			 "homeTeam":{"id":1,"name":"A"},"awayTeam":{"id":2,"name":"B"},
			 "score":{"winner":null,"fullTime":{"home":0,"away":0},"halfTime":{"home":0,"away":0}}}
		]}`))
	})

	items, err := client.ListLiveMatches(context.Background(), []string{"PL", "BL1"})
	if err != nil {
		t.Fatalf("ListLiveMatches: %v", err)
	}

	if gotQuery != "status=LIVE%2CIN_PLAY%2CPAUSED" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(items) != 1 || items[0].ExternalID != 1 {
		t.Fatalf("expected only tracked competitions, got %+v", items)
	}
	if items[0].Minute == nil || *items[0].Minute != 55 {
		t.Fatalf("expected minute to be mapped, got %+v", items[0])
	}
}

func TestClient_GetStandings_UsesTotalTableOnly(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"competition":{"code":"PL","name":"Premier League"},
			"standings":[
				{"type":"HOME","table":[{"position":1,"team":{"id":99,"name":"Ignored"},"playedGames":3}]},
				{"type":"TOTAL","table":[
					{"position":1,"team":{"id":57,"name":"Arsenal","shortName":"Arsenal","crest":"a.png"},
					 "playedGames":5,"form":"W,W,D,W,W","won":4,"draw":1,"lost":0,
					 "points":13,"goalsFor":12,"goalsAgainst":3,"goalDifference":9}
				]}
			]}`))
	})

	rows, err := client.GetStandings(context.Background(), "PL")
	if err != nil {
		t.Fatalf("GetStandings: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TeamExternalID != 57 || rows[0].Points != 13 || rows[0].Form != "W,W,D,W,W" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestClient_GetHeadToHead_RequiresMatchID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GetHeadToHead(context.Background(), 0, 10)
	if !errors.Is(err, usecase.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
