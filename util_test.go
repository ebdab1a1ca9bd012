package meshy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats to within a small absolute margin.
var approx = cmpopts.EquateApprox(0, 1e-9)

// newTestEditor builds a configured editor with a fixed palette order.
func newTestEditor(t *testing.T, w, h int, extent Size) *Editor {
	t.Helper()
	ed, err := New(Config{GridWidth: w, GridHeight: h, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ed.SetViewExtent(extent.Width, extent.Height); err != nil {
		t.Fatalf("SetViewExtent: %v", err)
	}
	return ed
}

// cmpTargets lets cmp look inside surfaceTarget.
var cmpTargets = cmp.AllowUnexported(surfaceTarget{})
