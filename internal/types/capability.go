package types

const (
	CapabilityPackagesUpdate   = "packages.update"
	CapabilityPackagesSetLocks = "packages.setLocks"
)

// Capability is a feature a client advertised for the current session.
type Capability struct {
	Version int
	Value   int
}

type Capabilities map[string]Capability

func (c Capabilities) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// VersionOf returns the advertised version of name, or 0 when absent.
func (c Capabilities) VersionOf(name string) int {
	return c[name].Version
}
