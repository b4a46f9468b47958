// Package template renders the canonical nginx reverse-proxy vhost for a
// record that has no live file yet.
//
// The template is embedded in the binary from nginx/proxy.tmpl. It listens on
// port 80 over IPv4 and IPv6 and forwards every request to
// http://localhost:{port} with the WebSocket upgrade, Host and cache-bypass
// headers set.
//
//	content, err := template.Render(config.Record{
//	    Filename:   "a.example.com.conf",
//	    ServerName: "a.example.com",
//	    Port:       8123,
//	})
//
// Rendering is one-directional: generated text parses back to the same
// server_name and port, but hand-edited live files are never reproduced.
package template
