package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/layout"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	if format == FormatText {
		return ".txt"
	}
	return "." + format
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Output is everything a compilation produced.
type Output struct {
	System      geom.LayoutSystem `json:"system"`
	Final       geom.LayoutAlign  `json:"final"`
	Fragments   []layout.Fragment `json:"fragments"`
	Regions     []layout.Region   `json:"regions"`
	Trace       []layout.Event    `json:"trace"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// Render produces one artifact per format.
func Render(ctx context.Context, out Output, formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	var dot string
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = Text(out)
		case FormatJSON:
			data, err = JSON(out)
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = ToDOT(out)
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = RenderSVG(ctx, dot)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
