// Copyright © 2024 The ELPS authors

// Package docs embeds the ELK language reference for use by the CLI.
package docs

import _ "embed"

// LangGuide is the language reference printed by "elk doc --guide".
//
//go:embed lang.md
var LangGuide string
