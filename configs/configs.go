// Package configs embeds the default movement, display and stage files.
package configs

import "embed"

// FS holds movement.yaml, display.json and stages/*.json
//
//go:embed movement.yaml display.json stages/*.json
var FS embed.FS
