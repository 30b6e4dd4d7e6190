package host

import (
	"testing"
	"time"

	"hostshell/internal/testutils"
	"hostshell/internal/version"

	"github.com/stretchr/testify/assert"
)

func TestBuildTitle(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(info *version.PackageInfo)
		expected string
	}{
		{
			name:     "release omits date",
			modify:   func(*version.PackageInfo) {},
			expected: "Sample 2.3 beta (Go 1.24 Release)",
		},
		{
			name:     "tag and date without release",
			modify:   func(info *version.PackageInfo) { info.Release = "" },
			expected: "Sample 2.3 dev 2025-01-01 12:30:00 UTC (Go 1.24 Release)",
		},
		{
			name: "release build image runtime",
			modify: func(info *version.PackageInfo) {
				info.ImageRuntimeVersion = "go1.23.2"
				info.Version = "2.3.7"
			},
			expected: "Sample 2.3 beta (Go 1.23.2 Release)",
		},
		{
			name: "empty fragments skipped",
			modify: func(info *version.PackageInfo) {
				info.Release = ""
				info.Tag = ""
				info.BuildDate = time.Time{}
				info.Configuration = ""
			},
			expected: "Sample 2.3 (Go 1.24)",
		},
		{
			name: "no runtime descriptor",
			modify: func(info *version.PackageInfo) {
				info.RuntimeText = ""
				info.RuntimeVersion = ""
				info.Configuration = ""
			},
			expected: "Sample 2.3 beta",
		},
		{
			name:     "unparsable version kept",
			modify:   func(info *version.PackageInfo) { info.Version = "trunk" },
			expected: "Sample trunk beta (Go 1.24 Release)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := testutils.SamplePackageInfo()
			tt.modify(&info)
			assert.Equal(t, tt.expected, BuildTitle(info))
		})
	}
}

func TestDefaultTitle_Cached(t *testing.T) {
	calls := 0
	source := func() version.PackageInfo {
		calls++
		return testutils.SamplePackageInfo()
	}
	h, _ := newPlainHost(testutils.NewMockInterpreter(1), WithTitleSource(source))

	assert.Equal(t, "Sample 2.3 beta (Go 1.24 Release)", h.DefaultTitle())
	assert.Equal(t, "Sample 2.3 beta (Go 1.24 Release)", h.DefaultTitle())
	assert.Equal(t, 1, calls)
}

func TestDefaultTitle_EmptyNotCached(t *testing.T) {
	calls := 0
	source := func() version.PackageInfo {
		calls++
		if calls == 1 {
			return version.PackageInfo{}
		}
		return testutils.SamplePackageInfo()
	}
	h, _ := newPlainHost(testutils.NewMockInterpreter(1), WithTitleSource(source))

	assert.Equal(t, "", h.DefaultTitle())
	assert.Equal(t, "Sample 2.3 beta (Go 1.24 Release)", h.DefaultTitle())
	assert.Equal(t, 2, calls)
}

func TestDefaultTitle_FailureSwallowed(t *testing.T) {
	source := func() version.PackageInfo {
		panic("metadata unavailable")
	}
	h, _ := newPlainHost(testutils.NewMockInterpreter(1), WithTitleSource(source))

	assert.NotPanics(t, func() {
		assert.Equal(t, "", h.DefaultTitle())
	})
}

func TestDefaultTitle_RealMetadata(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))
	assert.Contains(t, h.DefaultTitle(), version.PackageName)
}
