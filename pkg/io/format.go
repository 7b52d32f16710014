package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/dotwalk/pkg/errors"
	"github.com/matzehuels/dotwalk/pkg/graph"
)

// Format is a graph document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists every supported document format.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat accepts a format name, with "yml" as an alias for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown document format %q", s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errs.New(errs.ErrCodeInvalidFormat, "cannot tell the format of %s without an extension", path)
	}
	return ParseFormat(ext)
}

// Read decodes a graph document from r.
//
// The document is a table with an "id" and a "nodes" list, plus optional
// "kind", "rankdir", "attrs", "edges" and "subgraphs":
//
//	{
//	  "id": "deps",
//	  "nodes": [{"id": "a"}, {"id": "b", "style": "bold"}],
//	  "edges": [{"from": "a", "to": "b", "head": ["lcrow", "tee"]}]
//	}
//
// Unknown keys are rejected. Read returns an error if:
//   - The document is malformed (code INVALID_FORMAT)
//   - An identifier is not a valid DOT ID (code INVALID_ID)
//   - A style, arrow, compass point, rank direction or kind is unknown
//     (code INVALID_OPTION)
//   - A node ID is duplicated or an edge or subgraph references an unknown
//     node (code INVALID_GRAPH)
//
// Errors are wrapped with context describing which node or edge caused
// the problem. Read does not close r.
func Read(r io.Reader, f Format) (*graph.Graph, error) {
	var d document
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, decodeError(f, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, decodeError(f, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "decode toml: unknown key %s", undecoded[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, decodeError(f, err)
		}
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported document format %q", f)
	}
	return d.toGraph()
}

// Import reads the document at path, picking the format from its
// extension. A missing file is reported with code FILE_NOT_FOUND.
func Import(path string) (*graph.Graph, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeIO, err, "open %s", path)
	}
	defer file.Close()

	g, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Write encodes g as a document in format f.
// The output can be re-imported with [Read] for round-trip processing.
func Write(w io.Writer, g *graph.Graph, f Format) error {
	d := fromGraph(g)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errs.New(errs.ErrCodeUnsupported, "unsupported document format %q", f)
	}
	return nil
}

// Export writes g to path in the format given by its extension.
func Export(g *graph.Graph, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "create %s", path)
	}
	if err := Write(file, g, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func decodeError(f Format, err error) error {
	if errors.Is(err, io.EOF) {
		return errs.New(errs.ErrCodeInvalidFormat, "decode %s: empty document", f)
	}
	return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s", f)
}
