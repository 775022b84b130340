package domain

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// TargetFailure records one failed unit of the build matrix.
type TargetFailure struct {
	Target Target
	Err    error
}

// MatrixResult is the typed record of which targets were requested and which
// succeeded. It replaces any rediscovery of build outputs from filesystem
// side effects.
type MatrixResult struct {
	Artifacts []BuildArtifact
	Failed    []TargetFailure
}

// Complete reports whether every scheduled target succeeded.
func (r MatrixResult) Complete() bool {
	return len(r.Failed) == 0
}

// Err returns nil for a complete matrix, or a partial-build error listing
// the failed targets.
func (r MatrixResult) Err() error {
	if r.Complete() {
		return nil
	}
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Target.Name()
	}
	sort.Strings(names)
	return zerr.With(ErrPartialBuild, "failed_targets", strings.Join(names, ","))
}

// Sort orders artifacts and failures by target name for deterministic
// reporting.
func (r *MatrixResult) Sort() {
	sort.Slice(r.Artifacts, func(i, j int) bool {
		return r.Artifacts[i].Target.Name() < r.Artifacts[j].Target.Name()
	})
	sort.Slice(r.Failed, func(i, j int) bool {
		return r.Failed[i].Target.Name() < r.Failed[j].Target.Name()
	})
}
