// Package version exposes the build version stamped into the binary.
//
// Version, git commit, and build time are set at compile time via
// -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.0.0"
//
// When the variables are left unset, Get falls back to the VCS
// metadata embedded by the Go toolchain.
package version
