// Package version provides centralized version management for HostShell.
// It supports semantic versioning, build-time injection, and the packaging
// metadata hosts use to build their titles.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// PackageName is the display name used in host titles
	PackageName = "HostShell"

	// Version is the semantic version of the application
	Version = "0.3.0"

	// Release is an optional release tag such as "beta" or "rc1"
	Release = ""

	// Tag is the raw build tag used when no release tag is present
	Tag = "dev"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"

	// Configuration names the build flavor, e.g. "Release" or "Debug"
	Configuration = "Release"
)

// DevelRuntimeVersion is what development toolchains report instead of a
// real release number.
const DevelRuntimeVersion = "devel"

// PackageInfo is the packaging metadata a host title is built from.
type PackageInfo struct {
	Name                string
	Version             string
	Release             string
	Tag                 string
	BuildDate           time.Time
	RuntimeText         string
	ImageRuntimeVersion string
	RuntimeVersion      string
	Configuration       string
}

// Info represents comprehensive version information
type Info struct {
	Version   string          `json:"version"`
	Release   string          `json:"release,omitempty"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetInfo returns comprehensive version information
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	return &Info{
		Version:   Version,
		Release:   Release,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

// GetPackageInfo collects the packaging metadata of the running binary.
func GetPackageInfo() PackageInfo {
	info := PackageInfo{
		Name:           PackageName,
		Version:        Version,
		Release:        Release,
		Tag:            Tag,
		RuntimeText:    "Go",
		RuntimeVersion: runtime.Version(),
		Configuration:  Configuration,
	}

	if built, err := GetBuildTime(); err == nil {
		info.BuildDate = built
	}

	info.ImageRuntimeVersion = imageRuntimeVersion()
	return info
}

// imageRuntimeVersion returns the toolchain version recorded in the binary.
func imageRuntimeVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.GoVersion == "" {
		return DevelRuntimeVersion
	}
	if strings.HasPrefix(bi.GoVersion, DevelRuntimeVersion) {
		return DevelRuntimeVersion
	}
	return bi.GoVersion
}

// GetFormattedVersion returns a nicely formatted version string
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("%s v%s (invalid version)", PackageName, Version)
	}

	var parts []string

	if info.Release != "" {
		parts = append(parts, fmt.Sprintf("%s v%s %s", PackageName, info.Version, info.Release))
	} else {
		parts = append(parts, fmt.Sprintf("%s v%s", PackageName, info.Version))
	}

	if info.GitCommit != "unknown" && info.GitCommit != "" {
		shortCommit := info.GitCommit
		if len(shortCommit) > 7 {
			shortCommit = shortCommit[:7]
		}
		parts = append(parts, fmt.Sprintf("commit %s", shortCommit))
	}

	if info.BuildDate != "unknown" && info.BuildDate != "" {
		parts = append(parts, fmt.Sprintf("built %s", info.BuildDate))
	}

	return strings.Join(parts, ", ")
}

// ValidateVersion validates that the current version is a valid semantic version
func ValidateVersion() error {
	_, err := semver.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return nil
}

// IsPrerelease returns true if the current version is a prerelease
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// SetBuildInfo sets build information (used for testing)
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}

// GetBuildTime returns the build time as a time.Time if parseable
func GetBuildTime() (time.Time, error) {
	if BuildDate == "unknown" || BuildDate == "" {
		return time.Time{}, fmt.Errorf("build date not available")
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, BuildDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse build date '%s'", BuildDate)
}
