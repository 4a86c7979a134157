package main

import (
	"testing"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spinspiral"
)

func TestRenderImageBackends(t *testing.T) {
	m := spinspiral.DefaultModel(spincolor.Default())
	for _, backend := range []string{"rasterx", "gg"} {
		img, err := renderImage(m, 1, backend)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
			t.Errorf("%s: unexpected bounds %v", backend, b)
		}
		if _, _, _, a := img.At(52, 50).RGBA(); a == 0 {
			t.Errorf("%s: start dot not drawn", backend)
		}
	}
	if _, err := renderImage(m, 1, "cairo"); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestLookup(t *testing.T) {
	if _, err := lookup(spincolor.Presets(), "film noir"); err != nil {
		t.Error(err)
	}
	if _, err := lookup(spincolor.Presets(), "nope"); err == nil {
		t.Error("expected an error")
	}
}
