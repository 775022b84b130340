// Package domain contains the pure types of the release pipeline.
package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// semverRe matches the version field literally; no normalization is applied.
var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

// Manifest is the project manifest read once per pipeline run. It is the
// source of truth for all downstream artifact and release naming.
type Manifest struct {
	Name        string
	Version     string
	Authors     []string
	Description string
	Homepage    string
	Repository  string
	License     string
}

// Maintainer returns the first author, used for Debian control files and
// recipe maintainer lines.
func (m Manifest) Maintainer() string {
	if len(m.Authors) == 0 {
		return ""
	}
	return m.Authors[0]
}

// Validate checks the fields the pipeline cannot operate without.
func (m Manifest) Validate() error {
	if m.Name == "" {
		return zerr.With(ErrMalformedManifest, "field", "name")
	}
	if m.Version == "" {
		return zerr.With(ErrMalformedManifest, "field", "version")
	}
	if !semverRe.MatchString(m.Version) {
		return zerr.With(zerr.With(ErrMalformedManifest, "field", "version"), "value", m.Version)
	}
	return nil
}
