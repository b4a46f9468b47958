package config

import (
	"strings"
)

// Extension is appended to the derived filename of every vhost file
const Extension = ".conf"

// Record is the canonical description of one reverse-proxy vhost
type Record struct {
	Filename   string `json:"filename" yaml:"filename"`
	ServerName string `json:"server_name" yaml:"server_name"`
	Port       int    `json:"port" yaml:"port"`
}

// DefaultFilename derives the vhost filename from a server_name value.
// Only the first whitespace-delimited name is used, cut at the first comma.
func DefaultFilename(serverName string) string {
	fields := strings.Fields(serverName)
	if len(fields) == 0 {
		return Extension
	}
	name, _, _ := strings.Cut(fields[0], ",")
	return name + Extension
}

// HasDefaultFilename reports whether the record's filename is the one derived
// from its server_name
func (r Record) HasDefaultFilename() bool {
	return r.Filename == DefaultFilename(r.ServerName)
}

// Names returns every host name listed in server_name
func (r Record) Names() []string {
	return strings.FieldsFunc(r.ServerName, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t'
	})
}
