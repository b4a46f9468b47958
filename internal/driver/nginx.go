package driver

// NginxDriver implements the Driver interface for nginx and nginx builds
// that share its CLI (openresty)
type NginxDriver struct {
	name   string
	binary string
	unit   string
}

// NewNginx creates a driver for the stock nginx package
func NewNginx() *NginxDriver {
	return &NginxDriver{name: "nginx", binary: "nginx", unit: "nginx"}
}

// NewNginxFlavor creates a driver for an nginx build with its own binary and
// systemd unit
func NewNginxFlavor(name, binary, unit string) *NginxDriver {
	return &NginxDriver{name: name, binary: binary, unit: unit}
}

// Name returns the driver name
func (n *NginxDriver) Name() string {
	return n.name
}

// TestCommand returns the config syntax check
func (n *NginxDriver) TestCommand() []string {
	return []string{n.binary, "-t"}
}

// RestartCommand returns the systemd restart of the service unit
func (n *NginxDriver) RestartCommand() []string {
	return []string{"systemctl", "restart", n.unit}
}

// init registers the nginx drivers
func init() {
	Register(NewNginx())
	Register(NewNginxFlavor("openresty", "openresty", "openresty"))
}
