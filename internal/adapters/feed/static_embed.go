package feed

import (
	_ "embed"
)

// Bundled fallback datasets served when the upstream feeds are down.
var (
	//go:embed data/top100.json
	top100JSON []byte

	//go:embed data/teams.json
	teamsJSON []byte
)
