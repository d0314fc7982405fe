package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/qrforge/qr-api/internal/errors"
	"github.com/qrforge/qr-api/internal/log"
	"github.com/qrforge/qr-api/qrgen"
)

// Service implements qrgen.Renderer. Stateless; safe for concurrent
// use.
type Service struct {
	logger *log.Logger
}

var _ qrgen.Renderer = (*Service)(nil)

func New(logger *log.Logger) *Service {
	return &Service{
		logger: logger.Module("render"),
	}
}

func (s *Service) Render(ctx context.Context, req qrgen.Request) (res *qrgen.Rendered, err error) {
	start := time.Now()
	defer func() { recordRender(ctx, "standard", req.Format, start, err) }()

	res, _, err = s.render(ctx, req)
	return res, err
}

// render is the shared pipeline behind Render and RenderBatch. It
// re-validates data and format so batch items coming in raw get the
// same treatment as pre-validated single requests. The parsed format
// is returned for archive entry naming.
func (s *Service) render(ctx context.Context, req qrgen.Request) (*qrgen.Rendered, qrgen.Format, error) {
	if req.Data == "" {
		return nil, "", apperrors.New(qrgen.ErrInvalidInput, "'data' field must not be empty.")
	}
	format, err := qrgen.ParseFormat(string(req.Format))
	if err != nil {
		return nil, "", err
	}
	if req.BoxSize < 1 || req.Border < 0 || req.Version < 1 || req.Version > 40 {
		return nil, "", apperrors.Newf(qrgen.ErrInvalidInput,
			"rendering parameters out of range (box_size %d, border %d, version %d)",
			req.BoxSize, req.Border, req.Version)
	}

	fg, err := ParseColor(req.FillColor)
	if err != nil {
		return nil, "", err
	}
	bg, err := ParseColor(req.BackColor)
	if err != nil {
		return nil, "", err
	}

	grid, err := encodeModules(req.Data, req.Version, req.Level)
	if err != nil {
		return nil, "", err
	}

	// a supplied logo must decode even when the output format cannot
	// carry the overlay
	var logo image.Image
	if len(req.Logo) > 0 {
		if logo, err = decodeLogo(req.Logo); err != nil {
			return nil, "", err
		}
	}

	if format == qrgen.FormatSVG {
		return &qrgen.Rendered{
			Bytes:     paintSVG(grid, req.BoxSize, req.Border, fg, bg),
			MediaType: format.MediaType(),
		}, format, nil
	}

	img := paintRaster(grid, req.BoxSize, req.Border, fg, bg)
	if logo != nil {
		overlayLogo(img, logo)
		logoOverlays.Add(ctx, 1)
	}

	out, err := encodeRaster(img, format, bg)
	if err != nil {
		return nil, "", err
	}
	return &qrgen.Rendered{Bytes: out, MediaType: format.MediaType()}, format, nil
}

func encodeRaster(img *image.RGBA, format qrgen.Format, bg color.Color) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case qrgen.FormatJPEG:
		opaque := flatten(img, bg)
		if err := jpeg.Encode(&buf, opaque, nil); err != nil {
			return nil, errors.Wrap(err, "encode jpeg")
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(err, "encode png")
		}
	}
	return buf.Bytes(), nil
}

// RenderBatch renders every item and zips the successes. Items that
// fail for caller-side reasons are skipped so one bad entry cannot
// sink the batch; renderer faults still abort.
func (s *Service) RenderBatch(ctx context.Context, items []qrgen.Request) (*qrgen.Archive, error) {
	if len(items) == 0 {
		return nil, apperrors.New(qrgen.ErrInvalidInput,
			"'items' must be a non-empty list of QR code requests.")
	}

	entries := make([]archiveEntry, 0, len(items))
	var skipped []int
	for idx, item := range items {
		res, format, err := s.render(ctx, item)
		if err != nil {
			if apperrors.Is(err, qrgen.ErrInvalidInput) {
				s.logger.Debug("skipping invalid batch item",
					log.Int("index", idx), log.Error(err))
				skipped = append(skipped, idx)
				continue
			}
			return nil, errors.Wrapf(err, "batch item %d", idx)
		}
		entries = append(entries, archiveEntry{
			name: qrgen.EntryName(idx, item.Filename, format),
			data: res.Bytes,
		})
	}

	data, err := buildArchive(entries)
	if err != nil {
		return nil, err
	}

	batchItemsRendered.Add(ctx, int64(len(entries)))
	batchItemsSkipped.Add(ctx, int64(len(skipped)))
	return &qrgen.Archive{Bytes: data, Count: len(entries), Skipped: skipped}, nil
}

func (s *Service) RenderArtistic(ctx context.Context, req qrgen.ArtisticRequest) (res *qrgen.Rendered, err error) {
	start := time.Now()
	defer func() { recordRender(ctx, "artistic", req.Format, start, err) }()

	if req.Data == "" {
		return nil, apperrors.New(qrgen.ErrInvalidInput, "'data' field must not be empty.")
	}
	if req.Format != qrgen.FormatPNG && req.Format != qrgen.FormatSVG {
		return nil, apperrors.New(qrgen.ErrInvalidInput,
			"Only PNG and SVG formats are supported for artistic QR codes.")
	}

	dark, err := ParseColor(req.Dark)
	if err != nil {
		return nil, err
	}
	light, err := ParseColor(req.Light)
	if err != nil {
		return nil, err
	}

	var out []byte
	if req.Format == qrgen.FormatSVG {
		out, err = artisticSVG(req.Data, req.Scale, req.Border, dark, light, req.Level)
	} else {
		out, err = artisticPNG(req.Data, req.Scale, req.Border, dark, light, req.Level)
	}
	if err != nil {
		return nil, err
	}
	return &qrgen.Rendered{Bytes: out, MediaType: req.Format.MediaType()}, nil
}
