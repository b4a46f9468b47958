// Package vhost reads reverse-proxy vhost files into config records.
package vhost

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ksyq12/vhostsync/internal/config"
	"github.com/ksyq12/vhostsync/internal/directive"
	"github.com/ksyq12/vhostsync/internal/errors"
	"github.com/ksyq12/vhostsync/internal/logger"
)

// Parse extracts server_name and the proxy_pass port from vhost text.
// The returned record has no Filename; ParseFile sets it.
func Parse(text string) (config.Record, error) {
	lines := directive.Lines(text)

	serverName, ok := directive.Find(lines, "server_name")
	if !ok || serverName == "" {
		return config.Record{}, errors.DirectiveMissing("server_name", "")
	}

	target, ok := directive.Find(lines, "proxy_pass")
	if !ok {
		return config.Record{}, errors.DirectiveMissing("port", "")
	}
	port, ok := proxyPort(target)
	if !ok {
		return config.Record{}, errors.DirectiveMissing("port", "")
	}

	return config.Record{ServerName: serverName, Port: port}, nil
}

// proxyPort returns the port after the last ':' of a proxy_pass target.
// A trailing URI path ("http://localhost:8123/") is allowed.
func proxyPort(target string) (int, bool) {
	i := strings.LastIndex(target, ":")
	if i < 0 {
		return 0, false
	}
	s, _, _ := strings.Cut(target[i+1:], "/")
	port, err := strconv.Atoi(s)
	if err != nil || port <= 0 {
		return 0, false
	}
	return port, true
}

// ParseFile reads and parses the vhost file at path. The record's Filename
// is the file's base name.
func ParseFile(path string) (config.Record, error) {
	logger.Info("load file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Record{}, errors.IO("failed to read vhost file", path, err)
	}

	rec, err := Parse(string(data))
	if err != nil {
		return config.Record{}, errors.WithFile(err, path)
	}
	rec.Filename = filepath.Base(path)
	return rec, nil
}
