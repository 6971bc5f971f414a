// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

const unknownBuildValue = "N/A"

// AppBuildInfo is the build metadata injected by linker flags. It is shown
// by the client's about window and reported by the dev backend's health
// endpoint.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo trims the values and replaces empty ones with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// Known reports whether the binary was built with a version stamp.
func (a AppBuildInfo) Known() bool {
	return a.Version != "" && a.Version != unknownBuildValue
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version, a.Date, a.Commit)
}

func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return unknownBuildValue
	}
	return v
}
