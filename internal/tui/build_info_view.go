// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/MKhiriev/fx-desk/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := fmt.Sprintf("Application: fx-desk\nVersion: %s\nBuilt: %s\nCommit: %s", info.Version, info.Date, info.Commit)
	return overlayBoxStyle.Render(renderPage("ABOUT", body, "esc: back"))
}
