package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedManifest is returned when the project manifest is missing
	// required fields or carries a version that is not a semantic version.
	ErrMalformedManifest = zerr.New("malformed manifest")

	// ErrUnknownArch is returned when a target architecture has no entry in
	// the Debian architecture mapping.
	ErrUnknownArch = zerr.New("unknown architecture")

	// ErrUnknownFamily is returned when a platform-family selector does not
	// name one of the supported packaging ecosystems.
	ErrUnknownFamily = zerr.New("unknown platform family")

	// ErrNoTargets is returned when the pipeline is invoked with an empty
	// target matrix.
	ErrNoTargets = zerr.New("no targets configured")

	// ErrPartialBuild is returned when at least one target of the build
	// matrix failed. The pipeline never packages a partial matrix.
	ErrPartialBuild = zerr.New("partial build failure")

	// ErrMissingArtifact is returned when a packager is asked to run without
	// the build artifacts its platform family requires.
	ErrMissingArtifact = zerr.New("missing build artifact")

	// ErrDuplicateArtifactKey is returned when two packaging operations
	// produce artifacts with the same (family, architecture) key. This is a
	// configuration defect, never retried.
	ErrDuplicateArtifactKey = zerr.New("duplicate artifact key")
)
