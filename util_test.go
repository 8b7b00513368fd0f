package nurbs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, want, got Vec) {
	t.Helper()
	if !want.Near(got) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func assertNear2(t *testing.T, want, got Vec) {
	t.Helper()
	if !want.Near2(got) {
		t.Errorf("got %v, want %v", got, want)
	}
}
