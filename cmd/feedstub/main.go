// Command feedstub runs a local stand-in for the upstream players and
// standings APIs. Point GRIDIRON_FEED_BASE_URL at it to exercise the
// live-fetch path during development without the real feeds.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/okian/gridiron/internal/adapters/feed"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/pkg/logger"
)

const (
	defaultAddr       = ":9090"
	maxGamesPerSeason = 17
	readHeaderTimeout = 5 * time.Second
)

func main() {
	var (
		addr    = flag.String("addr", defaultAddr, "listen address")
		latency = flag.Duration("latency", 0, "artificial response delay")
		failure = flag.Float64("failure", 0, "probability of a 500 response, 0..1")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	players := feed.FallbackPlayers()
	standings := randomStandings(feed.FallbackTeams())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /players", flaky(*latency, *failure, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"top100": players, "players": players})
	}))
	mux.HandleFunc("GET /standings", flaky(*latency, *failure, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, standings)
	}))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		log.Info(ctx, "feed stub listening", logger.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("feed stub failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// standingRow mirrors one row of the standings API schema.
type standingRow struct {
	TeamID         string `json:"team_id"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Record         string `json:"record"`
	ConferenceRank int    `json:"conference_rank"`
}

// randomStandings fabricates a plausible mid-season table.
func randomStandings(teams []model.Entity) []standingRow {
	rows := make([]standingRow, 0, len(teams))
	for i, t := range teams {
		wins := rand.Intn(maxGamesPerSeason + 1)
		losses := maxGamesPerSeason - wins
		rows = append(rows, standingRow{
			TeamID:         t.ID,
			Wins:           wins,
			Losses:         losses,
			Record:         formatRecord(wins, losses),
			ConferenceRank: i%16 + 1,
		})
	}
	return rows
}

func formatRecord(wins, losses int) string {
	return strconv.Itoa(wins) + "-" + strconv.Itoa(losses)
}

func flaky(latency time.Duration, failure float64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if latency > 0 {
			time.Sleep(latency)
		}
		if failure > 0 && rand.Float64() < failure {
			http.Error(w, "stubbed outage", http.StatusInternalServerError)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
