// Package driver names the web server commands that the remediation script
// runs after vhost files are promoted: a config syntax check and a service
// restart.
//
// # Supported Web Servers
//
//   - nginx: nginx -t, systemctl restart nginx
//   - openresty: openresty -t, systemctl restart openresty
//
// # Basic Usage
//
//	drv, err := driver.Get(cfg.Service)
//	if err != nil {
//	    return err
//	}
//	argv := drv.TestCommand() // ["nginx", "-t"]
//
// Drivers only describe commands. Executing them needs root and is left to
// the operator running the generated script.
package driver
