package main

import "embed"

// configFS holds the default configs shipped in the binary
//
//go:embed configs
var configFS embed.FS
