// Package testutils provides fakes and deterministic generators for HostShell tests.
package testutils

import (
	"fmt"
	"sync"
	"time"

	"hostshell/internal/version"
	"hostshell/pkg/hosttypes"

	"github.com/google/uuid"
)

var (
	// Thread-safe counter for deterministic ID generation
	idCounter uint64
	idMutex   sync.Mutex
)

// DeterministicUUID returns UUIDs in the format
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, etc.
func DeterministicUUID() uuid.UUID {
	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++
	return uuid.MustParse(fmt.Sprintf("%08d-0000-4000-8000-%012d", idCounter, idCounter))
}

// ResetDeterministicGenerators resets the counters for test isolation.
func ResetDeterministicGenerators() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}

// NewHostData returns host data with a deterministic id bound to interp.
func NewHostData(name string, interp hosttypes.Interpreter) hosttypes.HostData {
	return hosttypes.HostData{
		ID:          DeterministicUUID(),
		Name:        name,
		Group:       "test",
		TypeName:    "test",
		Interpreter: interp,
	}
}

// SamplePackageInfo returns fixed packaging metadata for title tests.
func SamplePackageInfo() version.PackageInfo {
	return version.PackageInfo{
		Name:                "Sample",
		Version:             "2.3",
		Release:             "beta",
		Tag:                 "dev",
		BuildDate:           time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC),
		RuntimeText:         "Go",
		ImageRuntimeVersion: version.DevelRuntimeVersion,
		RuntimeVersion:      "go1.24.4",
		Configuration:       "Release",
	}
}
