// Copyright © 2025 The Carbide authors

// Package docs embeds the Carbide diagnostics reference for use by the CLI.
package docs

import _ "embed"

//go:embed codes.md
var Codes string
