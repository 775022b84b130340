package domain

import (
	"fmt"
	"strings"
)

// TagFor derives the release tag for a version. The tag namespace is the
// sole idempotency mechanism of the pipeline; there is no separate ledger.
func TagFor(version string) string {
	return "v" + version
}

// Release binds one tag to the full artifact set plus generated notes.
// Releases are append-only: the pipeline never mutates or deletes one.
type Release struct {
	Tag string
	// Repository is the "owner/name" destination on the release host.
	Repository string
	Notes      string
	Artifacts  []PackageArtifact
}

// RenderNotes generates the release notes: a short header and a table of
// artifacts with their content digests. Notes are generated, never
// hand-authored.
func RenderNotes(m Manifest, artifacts []PackageArtifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", m.Name, m.Version)
	if m.Description != "" {
		b.WriteString(m.Description)
		b.WriteString("\n\n")
	}
	b.WriteString("| Platform | Arch | Format | Digest |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, a := range artifacts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.Family, a.Arch, a.Format, a.Digest)
	}
	return b.String()
}

// PipelineConfig is the explicit, immutable context threaded stage to stage.
// It replaces any coupling through process environment.
type PipelineConfig struct {
	// ManifestPath is the project manifest file, relative to SourceDir.
	ManifestPath string
	// SourceDir is the checked-out source tree to build from.
	SourceDir string
	// OutDir receives all packaging output.
	OutDir string
	// Repository is the "owner/name" release destination.
	Repository string
	// Parallelism bounds concurrent build units. Zero means one per CPU.
	Parallelism int
	Targets     []Target
}

// TargetsFor returns the subset of the matrix a platform family consumes.
func (c PipelineConfig) TargetsFor(f Family) []Target {
	var out []Target
	for _, t := range c.Targets {
		if t.OS == f.OS() {
			out = append(out, t)
		}
	}
	return out
}
