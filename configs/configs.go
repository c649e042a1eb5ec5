// Package configs embeds the static translation tables shipped with the binary.
package configs

import _ "embed"

// Emotions holds emotion label translations (emotions.yaml).
//
//go:embed emotions.yaml
var Emotions []byte

// Strings holds the UI resource strings (strings.yaml).
//
//go:embed strings.yaml
var Strings []byte
