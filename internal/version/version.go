// Package version holds the build-time version string reported by
// `kilroy --version`. Version is overridden at build time via
// -ldflags "-X github.com/danshapiro/kilroy/internal/version.Version=...".
package version

var Version = "dev"
