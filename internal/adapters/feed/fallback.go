package feed

import (
	"encoding/json"
	"sort"

	"github.com/okian/gridiron/internal/domain/model"
)

// FallbackPlayers returns the bundled top-100 player list in its
// canonical order.
func FallbackPlayers() []model.Entity {
	var records []playerRecord
	if err := json.Unmarshal(top100JSON, &records); err != nil {
		// The dataset ships with the binary; an unparsable one is a
		// build defect, not a runtime condition.
		panic("bundled top100 dataset is invalid: " + err.Error())
	}
	out := make([]model.Entity, 0, len(records))
	for _, r := range records {
		out = append(out, r.entity())
	}
	return out
}

// FallbackTeams returns the bundled 32-team reference data.
func FallbackTeams() []model.Entity {
	var records []teamRecord
	if err := json.Unmarshal(teamsJSON, &records); err != nil {
		panic("bundled teams dataset is invalid: " + err.Error())
	}
	out := make([]model.Entity, 0, len(records))
	for _, r := range records {
		out = append(out, r.entity())
	}
	return out
}

// SortByRecord orders teams by win count descending, breaking ties by
// losses ascending. This is the canonical default order for the team
// builder.
func SortByRecord(teams []model.Entity) {
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].Losses < teams[j].Losses
	})
}
