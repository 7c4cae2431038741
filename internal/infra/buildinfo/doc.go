// Package buildinfo provides build information for Kyoto.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/kyoto-db/kyoto/internal/infra/buildinfo.Version=v0.3.0"
//
// When Commit is not injected it falls back to the VCS revision recorded
// by the Go toolchain, if any.
package buildinfo
