// Package platform provides platform-specific detection of the live nginx
// vhost directory.
package platform

import (
	"fmt"
	"os"
	"runtime"
)

// FallbackLiveDir is used when no candidate directory exists on this host
const FallbackLiveDir = "/etc/nginx/conf.d"

// candidates lists vhost directories in order of preference per GOOS.
// conf.d comes first because every file in it is loaded by the stock nginx.conf.
var candidates = map[string][]string{
	"linux": {
		"/etc/nginx/conf.d",
		"/etc/nginx/sites-available",
	},
	"darwin": {
		"/opt/homebrew/etc/nginx/servers", // Apple Silicon Homebrew
		"/usr/local/etc/nginx/servers",    // Intel Homebrew
	},
	"freebsd": {
		"/usr/local/etc/nginx/conf.d",
	},
}

// Candidates returns the live directory candidates for the current platform
func Candidates() []string {
	return candidates[runtime.GOOS]
}

// DetectLiveDir returns the first existing candidate for this platform,
// or FallbackLiveDir when none exists.
func DetectLiveDir() string {
	return firstExisting(Candidates(), pathExists)
}

// firstExisting returns the first path accepted by exists
func firstExisting(paths []string, exists func(string) bool) string {
	for _, p := range paths {
		if exists(p) {
			return p
		}
	}
	return FallbackLiveDir
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
