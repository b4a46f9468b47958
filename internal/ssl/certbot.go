package ssl

import (
	"fmt"
	"path/filepath"
)

// Cert represents an SSL certificate
type Cert struct {
	Domain   string
	CertPath string
	KeyPath  string
}

// letsencryptDir is the base directory for Let's Encrypt certificates
const letsencryptDir = "/etc/letsencrypt/live"

// GetCertPaths returns the certificate paths for a domain
func GetCertPaths(domain string) *Cert {
	return &Cert{
		Domain:   domain,
		CertPath: filepath.Join(letsencryptDir, domain, "fullchain.pem"),
		KeyPath:  filepath.Join(letsencryptDir, domain, "privkey.pem"),
	}
}

// IssueArgs returns the certbot arguments that obtain a certificate for
// domains through the nginx plugin. The plugin adds `listen 443 ssl;` to the
// live vhost; the next apply run turns it into an HTTP/2 listener.
func IssueArgs(domains []string, email string) ([]string, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("no domains to issue a certificate for")
	}

	args := []string{"--nginx"}
	for _, d := range domains {
		args = append(args, "-d", d)
	}

	if email != "" {
		args = append(args,
			"--email", email,
			"--agree-tos",
			"--non-interactive",
		)
	}

	return args, nil
}
