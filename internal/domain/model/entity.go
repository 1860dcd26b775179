// Package model contains domain models passed between layers.
package model

import "time"

// Kind discriminates the two entity shapes a builder can rank.
type Kind string

// Entity kinds.
const (
	KindPlayer Kind = "player"
	KindTeam   Kind = "team"
)

// Entity is a player or team record being ranked. ID is the dedup key;
// a ranked list never contains two entries with the same id.
type Entity struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// Player fields.
	Position string `json:"position,omitempty"`
	Team     string `json:"team,omitempty"`
	TeamID   string `json:"team_id,omitempty"`
	Age      int    `json:"age,omitempty"`
	Grade    string `json:"grade,omitempty"`

	// Team fields.
	FullName       string   `json:"full_name,omitempty"`
	Record         string   `json:"record,omitempty"`
	Conference     string   `json:"conference,omitempty"`
	Division       string   `json:"division,omitempty"`
	Colors         []string `json:"colors,omitempty"`
	Wins           int      `json:"wins,omitempty"`
	Losses         int      `json:"losses,omitempty"`
	ConferenceRank int      `json:"conference_rank,omitempty"`

	// LogoURL is the headshot or team logo used by the image exporter.
	LogoURL string `json:"logo_url,omitempty"`
}

// RankedEntry pairs a 1-based rank with the entity holding it.
type RankedEntry struct {
	Rank   int    `json:"rank"`
	Entity Entity `json:"entity"`
}

// SavedRanking is a named, durable snapshot of a ranked list.
type SavedRanking struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Date     time.Time     `json:"date"`
	Rankings []RankedEntry `json:"rankings"`
}
