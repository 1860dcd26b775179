// Package editor implements the ranking list editor: one parameterized
// component instantiated for the player and team builders.
package editor

import (
	"github.com/okian/gridiron/internal/adapters/export"
)

// Default editor configuration constants.
const (
	defaultHistoryLimit  = 50
	defaultMaxNameLength = 50
)

// BuilderConfig parameterizes one builder instance. The two presets
// keep their own numeric thresholds; they are configuration values,
// not shared constants.
type BuilderConfig struct {
	// Key names the builder ("players", "teams"); it doubles as the
	// metrics label.
	Key string

	// StorageKey is the persistence namespace for saved rankings.
	StorageKey string

	// ExportTitle heads every exported image.
	ExportTitle string

	// ExportSizes is the set of top-N slice lengths offered for export.
	ExportSizes []int

	// Layout carries the builder's column breakpoints and geometry.
	Layout export.Layout

	// HistoryLimit bounds the undo log.
	HistoryLimit int

	// MaxNameLength bounds user-supplied save names. The FIFO cap on
	// the save list itself is a storage concern (WithMaxPerKey).
	MaxNameLength int
}

func (c BuilderConfig) withDefaults() BuilderConfig {
	if c.HistoryLimit == 0 {
		c.HistoryLimit = defaultHistoryLimit
	}
	if c.MaxNameLength == 0 {
		c.MaxNameLength = defaultMaxNameLength
	}
	return c
}

// PlayersConfig is the player-rankings builder preset.
func PlayersConfig() BuilderConfig {
	return BuilderConfig{
		Key:         "players",
		StorageKey:  "player_rankings",
		ExportTitle: "Top 100 Player Rankings",
		ExportSizes: []int{5, 10, 25, 50},
		Layout: export.Layout{
			Breakpoints: []export.Breakpoint{
				{MaxEntries: 10, Columns: 1},
				{MaxEntries: 25, Columns: 2},
			},
			FallbackColumns: 4,
		},
	}
}

// TeamsConfig is the power-rankings builder preset.
func TeamsConfig() BuilderConfig {
	return BuilderConfig{
		Key:         "teams",
		StorageKey:  "power_rankings",
		ExportTitle: "NFL Power Rankings",
		ExportSizes: []int{5, 10, 16, 32},
		Layout: export.Layout{
			Breakpoints: []export.Breakpoint{
				{MaxEntries: 8, Columns: 1},
				{MaxEntries: 16, Columns: 2},
			},
			FallbackColumns: 4,
		},
	}
}
