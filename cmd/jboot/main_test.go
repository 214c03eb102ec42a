package main

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/obdevboot/jboot/hosterr"
)

func TestExitCodeMapsErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"unclassified", hosterr.New(hosterr.Unclassified, "op", "boom"), 1},
		{"timeout", hosterr.New(hosterr.Timeout, "op", "boom"), 2},
		{"bad parameter", hosterr.New(hosterr.BadParameter, "op", "boom"), 3},
		{"no free resources", hosterr.New(hosterr.NoFreeResources, "op", "boom"), 4},
		{"no device", hosterr.New(hosterr.NoDevice, "op", "boom"), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Errorf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestExitCodeUnwrapsPkgErrors(t *testing.T) {
	// github.com/pkg/errors.Wrap preserves Unwrap(); exitCode must see
	// through it to the underlying hosterr.Code the way run's callers do.
	inner := hosterr.New(hosterr.NoDevice, "find device", "no match")
	wrapped := errors.Wrap(inner, "run")

	if got := exitCode(wrapped); got != 5 {
		t.Errorf("exitCode(wrapped) = %d, want 5", got)
	}
}
