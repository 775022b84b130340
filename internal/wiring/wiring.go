// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shipper/internal/adapters/archive"
	_ "go.trai.ch/shipper/internal/adapters/checksum"
	_ "go.trai.ch/shipper/internal/adapters/config"
	_ "go.trai.ch/shipper/internal/adapters/debpkg"
	_ "go.trai.ch/shipper/internal/adapters/ghrelease"
	_ "go.trai.ch/shipper/internal/adapters/gitrepo"
	_ "go.trai.ch/shipper/internal/adapters/logger"
	_ "go.trai.ch/shipper/internal/adapters/manifest"
	_ "go.trai.ch/shipper/internal/adapters/pkgbuild"
	_ "go.trai.ch/shipper/internal/adapters/shell"
	_ "go.trai.ch/shipper/internal/adapters/telemetry"
	_ "go.trai.ch/shipper/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/shipper/internal/app"
	_ "go.trai.ch/shipper/internal/engine/pipeline"
)
