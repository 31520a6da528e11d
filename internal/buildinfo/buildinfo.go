// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package buildinfo carries the version stamped in by the release build.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/autobrr/anititle/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Current returns the stamped build values. Unstamped commit and date print as "unknown".
func Current() Info {
	return Info{
		Version: Version,
		Commit:  orUnknown(Commit),
		Date:    orUnknown(Date),
		Go:      runtime.Version(),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// String prints one "Key: value" line per field.
func String() string {
	i := Current()
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild date: %s\nGo: %s\n", i.Version, i.Commit, i.Date, i.Go)
}

// JSON encodes Current.
func JSON() ([]byte, error) {
	return json.Marshal(Current())
}
