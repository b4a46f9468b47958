// Package config holds the vhost record model and the application
// configuration stored in YAML format.
//
// # Records
//
// A Record is the canonical {filename, server_name, port} tuple that both the
// directory scanner and the manifest parser produce. Unless the manifest
// overrides it, the filename is derived from the server name:
//
//	config.DefaultFilename("jobsdone.hkit.cc")   // "jobsdone.hkit.cc.conf"
//	config.DefaultFilename("a.com, www.a.com")   // "a.com.conf"
//
// # Configuration
//
// Config names the live directory, the draft directory, the manifest file,
// the generated script and the managed service. It is stored at
// ~/.config/vhostsync/config.yaml unless another path is given:
//
//	live_dir: /etc/nginx/conf.d
//	draft_dir: draft/conf.d
//	manifest: nginx.md
//	script: draft/apply.sh
//	service: nginx
//	certbot_email: admin@example.com
//
// A missing file yields defaults, with live_dir detected by the platform
// package. The resolved *Config is passed into every operation; nothing in
// this module keeps directory locations in package state.
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config
