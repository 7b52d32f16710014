// Package layout runs Graphviz on DOT text.
//
// Graphviz is executed in process through [github.com/goccy/go-graphviz],
// which embeds a WebAssembly build, so no dot binary is needed. The DOT
// core never calls this package; only the CLI and the server do.
package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/dotwalk/pkg/errors"
)

// Options selects the output and the layout engine.
type Options struct {
	Format string // "svg" or "png"
	Engine string // Graphviz layout engine, "dot" when empty
}

var engines = map[string]graphviz.Layout{
	"dot":       graphviz.DOT,
	"neato":     graphviz.NEATO,
	"fdp":       graphviz.FDP,
	"sfdp":      graphviz.SFDP,
	"circo":     graphviz.CIRCO,
	"twopi":     graphviz.TWOPI,
	"osage":     graphviz.OSAGE,
	"patchwork": graphviz.PATCHWORK,
}

var formats = map[string]graphviz.Format{
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
}

// Render lays out the DOT graph src and returns the drawing. SVG output
// gets a normalized root element with a zero-origin viewBox.
func Render(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	if opts.Engine == "" {
		opts.Engine = "dot"
	}
	if err := errs.ValidateEngine(opts.Engine); err != nil {
		return nil, err
	}
	format, ok := formats[opts.Format]
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupported, "graphviz cannot produce %q here (want svg or png)", opts.Format)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(engines[opts.Engine])

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeLayoutFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeLayoutFailed, err, "render %s with %s", opts.Format, opts.Engine)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose size matches the drawing. Graphviz emits point
// units and translated origins otherwise.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	done := false
	return svgTagRe.ReplaceAllFunc(svg, func(tag []byte) []byte {
		if done {
			return tag
		}
		done = true
		return []byte(newSvg)
	})
}
