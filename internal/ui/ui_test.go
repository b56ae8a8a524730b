package ui

import (
	"bytes"
	"testing"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"auto":    ColorAuto,
		"":        ColorAuto,
		"rainbow": ColorAuto,
	}
	for input, want := range cases {
		if got := NormalizeColorMode(input); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPlainOutputRoutesStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorAlways, true)

	u.Infof("found %d\n", 3)
	u.Successf("saved")
	u.Statusf("loading page %d", 2)
	u.Errorf("boom")

	if got := out.String(); got != "found 3\nsaved\n" {
		t.Fatalf("stdout = %q, want %q", got, "found 3\nsaved\n")
	}
	if got := errOut.String(); got != "loading page 2\nboom\n" {
		t.Fatalf("stderr = %q", got)
	}
}
