package host

import "hostshell/pkg/hosttypes"

// flagCache holds the last computed capability flags. A cleared cell is
// recomputed in full on the next read; mutators only ever invalidate.
type flagCache struct {
	value hosttypes.HostFlags
	valid bool
}

func (c *flagCache) get(compute func() hosttypes.HostFlags) hosttypes.HostFlags {
	if !c.valid {
		c.value = compute()
		c.valid = true
	}
	return c.value
}

func (c *flagCache) invalidate() {
	c.value = hosttypes.HostFlagsNone
	c.valid = false
}
