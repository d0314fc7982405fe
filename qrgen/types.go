// Package qrgen defines the QR generation domain: request/result value
// types shared between the transport and the renderer, plus the
// Renderer contract itself. Everything here is request-scoped; nothing
// survives a call.
package qrgen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/qrforge/qr-api/internal/errors"
)

// ErrInvalidInput classifies caller mistakes (empty payload,
// unsupported format, bad color, undecodable logo). Transport maps it
// to HTTP 400.
const ErrInvalidInput = errors.Code("invalid input")

// Format is an output container format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPEG Format = "jpeg"
)

var formatMedia = map[Format]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatJPEG: "image/jpeg",
}

var formatExt = map[Format]string{
	FormatPNG:  ".png",
	FormatSVG:  ".svg",
	FormatJPEG: ".jpg",
}

// ParseFormat lower-cases and validates a caller-supplied format
// string; empty selects png. The error message lists the supported set
// and is safe to return to the caller verbatim.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatPNG, nil
	}
	f := Format(strings.ToLower(s))
	if _, ok := formatMedia[f]; !ok {
		return "", errors.Newf(ErrInvalidInput,
			"Unsupported format '%s'. Supported formats: %s.", string(f), supportedFormatList())
	}
	return f, nil
}

func supportedFormatList() string {
	names := make([]string, 0, len(formatMedia))
	for f := range formatMedia {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// MediaType returns the Content-Type for the format.
func (f Format) MediaType() string { return formatMedia[f] }

// Ext returns the canonical filename extension, dot included.
func (f Format) Ext() string { return formatExt[f] }

// Raster reports whether the format goes through the raster pipeline
// (logo overlay applies only to raster output).
func (f Format) Raster() bool { return f == FormatPNG || f == FormatJPEG }

// Level is an error-correction level letter.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// NormalizeLevel upper-cases the letter; anything outside {L,M,Q,H}
// silently becomes L. The fallback matches the behavior this service
// has always had; callers relying on it exist, so it is part of the
// contract rather than a validation error.
func NormalizeLevel(s string) Level {
	switch Level(strings.ToUpper(s)) {
	case LevelM:
		return LevelM
	case LevelQ:
		return LevelQ
	case LevelH:
		return LevelH
	default:
		return LevelL
	}
}

// ParseLevel is the strict variant used by the artistic pipeline.
func ParseLevel(s string) (Level, error) {
	lv := Level(strings.ToUpper(s))
	switch lv {
	case LevelL, LevelM, LevelQ, LevelH:
		return lv, nil
	}
	return "", errors.Newf(ErrInvalidInput, "invalid error correction level '%s'", s)
}

// Request carries the full parameter set of one render.
type Request struct {
	Data      string
	BoxSize   int    // pixels per module
	Border    int    // quiet-zone width in modules
	FillColor string // module color spec
	BackColor string // background color spec
	Version   int    // requested symbol version; auto-fit raises it on overflow
	Level     Level
	Format    Format
	Filename  string // download name, extension-corrected by transport
	Logo      []byte // optional raw upload, raster formats only
}

// DefaultRequest mirrors the documented parameter defaults.
func DefaultRequest() Request {
	return Request{
		BoxSize:   10,
		Border:    4,
		FillColor: "black",
		BackColor: "white",
		Version:   1,
		Level:     LevelL,
		Format:    FormatPNG,
	}
}

// ArtisticRequest parameterizes the styling-capable pipeline.
type ArtisticRequest struct {
	Data   string
	Dark   string // module color spec
	Light  string // background color spec
	Border int    // quiet-zone width in modules
	Scale  int    // pixels per module
	Level  Level
	Format Format // png or svg only
}

// Rendered is a finished image: bytes plus declared media type. Owned
// by the producing call; discarded once the response is written.
type Rendered struct {
	Bytes     []byte
	MediaType string
}

// Archive is the result of a batch render.
type Archive struct {
	Bytes   []byte
	Count   int   // items packed
	Skipped []int // zero-based positions of dropped items
}

// EntryName names a batch archive entry: the item's filename
// (extension-corrected, never replaced) or the positional default.
// idx is the item's zero-based position in the submitted batch;
// skipped items keep their slots.
func EntryName(idx int, filename string, format Format) string {
	ext := format.Ext()
	if filename == "" {
		return fmt.Sprintf("qr_%d%s", idx+1, ext)
	}
	if strings.HasSuffix(filename, ext) {
		return filename
	}
	return filename + ext
}

// Renderer is the QR rendering pipeline.
type Renderer interface {
	// Render runs the shared pipeline:
	// validate -> encode symbol -> render -> optional logo -> container.
	Render(ctx context.Context, req Request) (*Rendered, error)
	// RenderBatch renders each item independently and zips the
	// successes; invalid items are skipped, not errors.
	RenderBatch(ctx context.Context, items []Request) (*Archive, error)
	// RenderArtistic runs the styling-capable encoder/renderer pair.
	RenderArtistic(ctx context.Context, req ArtisticRequest) (*Rendered, error)
}
