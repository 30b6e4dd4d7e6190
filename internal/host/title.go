package host

import (
	"fmt"
	"strings"

	"hostshell/internal/version"

	"github.com/Masterminds/semver/v3"
)

// TitleDateFormat renders the build date in a title.
const TitleDateFormat = "2006-01-02 15:04:05 UTC"

// BuildTitle joins the non-empty title fragments with single spaces: name,
// major.minor version, release (or the build tag when there is no release),
// the build date when there is no release, and the runtime descriptor.
func BuildTitle(info version.PackageInfo) string {
	parts := []string{
		info.Name,
		shortVersion(info.Version),
	}

	if info.Release != "" {
		parts = append(parts, info.Release)
	} else {
		parts = append(parts, info.Tag)
		if !info.BuildDate.IsZero() {
			parts = append(parts, info.BuildDate.UTC().Format(TitleDateFormat))
		}
	}

	parts = append(parts, runtimeDescriptor(info))
	return joinNonEmpty(parts)
}

// runtimeDescriptor renders "(RuntimeText runtime Configuration)". A devel
// toolchain says nothing useful about the runtime, so the major.minor of the
// running runtime is used instead.
func runtimeDescriptor(info version.PackageInfo) string {
	runtimeVersion := strings.TrimPrefix(info.ImageRuntimeVersion, "go")
	if info.ImageRuntimeVersion == "" || info.ImageRuntimeVersion == version.DevelRuntimeVersion {
		runtimeVersion = shortVersion(strings.TrimPrefix(info.RuntimeVersion, "go"))
	}

	inner := joinNonEmpty([]string{info.RuntimeText, runtimeVersion, info.Configuration})
	if inner == "" {
		return ""
	}
	return "(" + inner + ")"
}

// shortVersion renders a version as major.minor, or as given when it does not parse.
func shortVersion(raw string) string {
	if raw == "" {
		return ""
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// DefaultTitle returns the host title, building it on first use. Failures
// are logged and yield "" without caching, so a later call may retry.
func (s *Shell) DefaultTitle() (title string) {
	if s.disposed() {
		return ""
	}
	if s.title != "" {
		return s.title
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Failed to build host title", "host", s.data.Name, "error", r)
			title = ""
		}
	}()

	info := s.titleSource()
	if info.Name == "" {
		return ""
	}
	s.title = BuildTitle(info)
	return s.title
}
