package driver

import (
	"fmt"
	"sort"
)

// Driver names the commands that validate and restart a web server.
// Commands are argv slices; they are written to the remediation script and
// never executed by this module.
type Driver interface {
	// Name returns the driver name (nginx, openresty)
	Name() string

	// TestCommand validates the web server config syntax
	TestCommand() []string

	// RestartCommand restarts the web server so new vhosts take effect
	RestartCommand() []string
}

// registry holds all registered drivers
var registry = make(map[string]Driver)

// Register adds a driver to the registry
func Register(d Driver) {
	registry[d.Name()] = d
}

// Get returns a driver by name
func Get(name string) (Driver, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("driver %s not found (available: %v)", name, Available())
	}
	return d, nil
}

// Available returns all registered driver names, sorted
func Available() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
