package state

import (
	_ "embed"
	"time"

	"sketchgen/mapping"
)

// Base text styles applied under any user stylesheet.
//
//go:embed default.css
var defaultStylesheet []byte

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:             time.Now(),
		DefaultStylesheet: defaultStylesheet,
		Mapping:           mapping.Default(),
	}
}
