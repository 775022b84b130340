package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// BuildArtifact is one raw binary produced by the build matrix. It is owned
// by the matrix once produced and consumed exactly once by packaging.
type BuildArtifact struct {
	Target     Target
	BinaryPath string
}

// PackageArtifact is a platform-native distributable unit derived from one
// or more build artifacts.
type PackageArtifact struct {
	Family Family
	Arch   Arch
	// Format names the distributable kind: "deb", "recipe" or "binary".
	Format string
	Path   string
	// Digest is the content digest of the artifact file, recorded in the
	// generated release notes. Empty until the aggregation stage fills it.
	Digest string
}

// ArtifactKey identifies a package artifact within a release.
type ArtifactKey struct {
	Family Family
	Arch   Arch
}

// Key returns the aggregation key of the artifact.
func (a PackageArtifact) Key() ArtifactKey {
	return ArtifactKey{Family: a.Family, Arch: a.Arch}
}

// ArtifactSet is the fan-in result of packaging: one artifact per
// (family, architecture) key. A key collision is a defect, not a valid
// state, since an overwritten artifact is a shipped-wrong-binary risk.
type ArtifactSet struct {
	artifacts map[ArtifactKey]PackageArtifact
}

// NewArtifactSet returns an empty set.
func NewArtifactSet() *ArtifactSet {
	return &ArtifactSet{artifacts: make(map[ArtifactKey]PackageArtifact)}
}

// Add inserts an artifact, failing on a key collision.
func (s *ArtifactSet) Add(a PackageArtifact) error {
	key := a.Key()
	if _, exists := s.artifacts[key]; exists {
		err := zerr.With(ErrDuplicateArtifactKey, "family", string(key.Family))
		return zerr.With(err, "arch", string(key.Arch))
	}
	s.artifacts[key] = a
	return nil
}

// Len returns the number of artifacts in the set.
func (s *ArtifactSet) Len() int {
	return len(s.artifacts)
}

// Sorted returns the artifacts ordered by family then architecture, so that
// release notes and uploads are deterministic.
func (s *ArtifactSet) Sorted() []PackageArtifact {
	out := make([]PackageArtifact, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Arch < out[j].Arch
	})
	return out
}
