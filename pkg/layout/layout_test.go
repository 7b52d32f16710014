package layout

import (
	"bytes"
	"context"
	"testing"

	errs "github.com/matzehuels/dotwalk/pkg/errors"
)

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites root",
			in:   `<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`,
		},
		{
			name: "keeps nested svg",
			in:   `<svg viewBox="0 0 10 20"><svg id="inner"></svg></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><svg id="inner"></svg></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg width="1"></svg>`,
			want: `<svg width="1"></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderRejectsOptions(t *testing.T) {
	ctx := context.Background()
	src := []byte("digraph g { a -> b; }")

	_, err := Render(ctx, src, Options{Format: "pdf"})
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("Render(pdf) error = %v, want %s", err, errs.ErrCodeUnsupported)
	}

	_, err = Render(ctx, src, Options{Format: "svg", Engine: "spring"})
	if !errs.Is(err, errs.ErrCodeInvalidOption) {
		t.Errorf("Render(spring) error = %v, want %s", err, errs.ErrCodeInvalidOption)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Render(cancelled, src, Options{Format: "svg"}); err != context.Canceled {
		t.Errorf("Render(cancelled) error = %v, want %v", err, context.Canceled)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the graphviz runtime")
	}
	src := []byte("digraph g {\n    N0[label=\"N0\"];\n    N1[label=\"N1\"];\n    N0 -> N1[label=\"E\"];\n}\n")
	svg, err := Render(context.Background(), src, Options{Format: "svg"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) && !bytes.Contains(svg, []byte("<svg")) {
		t.Fatalf("output is not SVG: %.80s", svg)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Errorf("viewBox not normalized: %.200s", svg)
	}
	if !bytes.Contains(svg, []byte(">N1<")) {
		t.Error("node label missing from SVG")
	}
}
