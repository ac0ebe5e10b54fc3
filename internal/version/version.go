package version

import (
	"runtime"
	"time"
)

// Overridden at build time via -ldflags "-X .../internal/version.Version=...".
var (
	Version   = "dev"                           // ex: v0.3.1
	Commit    = "none"                          // short git sha
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-08-31T09:15:00Z
	GoVersion = runtime.Version()
)
