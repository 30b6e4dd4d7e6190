//go:build !hoststrict

package host

// StrictDisposal makes use of a closed host panic. It is set by the hoststrict build tag.
const StrictDisposal = false
