// Package ssl detects and applies the HTTP/2 upgrade of nginx vhosts that
// already have a certificate, and builds the Certbot command for those that
// do not.
//
// # HTTP/2 Upgrade
//
// Upgrade inspects the uncommented listen directives of a vhost:
//
//	listen 443 ssl http2;   // already-upgraded: nothing to do
//	listen 443 ssl;         // upgraded: rewritten to "listen 443 ssl http2;"
//	(no ssl listener)       // no-ssl: text returned unmodified
//
// Commented lines (first non-whitespace character '#') are never matched or
// rewritten, so template blocks such as "# listen 443 ssl;" stay as they
// are. Token order is irrelevant when detecting an existing http2 listener,
// and IPv6 listeners ("listen [::]:443 ssl;") are handled like IPv4 ones.
// Every ";"-terminated statement on a line is checked, so
// "listen 443 ssl; listen [::]:443 ssl;" upgrades both listeners.
// Before matching, carriage returns are dropped and runs of more than two
// blank lines are collapsed to two.
//
// Upgrade is idempotent: upgrading its own output yields already-upgraded and
// the same text.
//
// # Certificate Issuance
//
// IssueArgs returns certbot arguments for the nginx plugin:
//
//	args, _ := ssl.IssueArgs([]string{"a.com", "www.a.com"}, "ops@a.com")
//	// --nginx -d a.com -d www.a.com --email ops@a.com --agree-tos --non-interactive
//
// The arguments end up in the generated remediation script; this package
// never runs certbot itself.
//
// # Certificate Paths
//
// Certificates are stored in Let's Encrypt's standard directory:
//
//	/etc/letsencrypt/live/{domain}/fullchain.pem  (certificate chain)
//	/etc/letsencrypt/live/{domain}/privkey.pem    (private key)
package ssl
