// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/solbuild/internal/adapters/config"
	_ "go.trai.ch/solbuild/internal/adapters/logger"
	_ "go.trai.ch/solbuild/internal/adapters/solc"
	_ "go.trai.ch/solbuild/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/solbuild/internal/app"
	_ "go.trai.ch/solbuild/internal/engine/pipeline"
)
