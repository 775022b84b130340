package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies validates the dependency injection graph.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers dependency IDs from the package name of
	// the interface passed to Dep[T]. Every port here lives in the shared
	// ports package, so the inference maps all of them to one ID and the
	// assertion cannot hold for this layout.
	t.Skip("Graft static validation is incompatible with the shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}
