package render

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrforge/qr-api/internal/errors"
	"github.com/qrforge/qr-api/qrgen"
)

func batchItem(data string) qrgen.Request {
	req := qrgen.DefaultRequest()
	req.Data = data
	return req
}

func archiveNames(t *testing.T, data []byte) []string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRenderBatch(t *testing.T) {
	svc := newTestService(t)

	items := []qrgen.Request{
		batchItem("first"),
		batchItem("second"),
		batchItem("third"),
	}
	arc, err := svc.RenderBatch(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 3, arc.Count)
	assert.Empty(t, arc.Skipped)
	assert.Equal(t, []string{"qr_1.png", "qr_2.png", "qr_3.png"}, archiveNames(t, arc.Bytes))
}

func TestRenderBatchSkipsInvalidItems(t *testing.T) {
	svc := newTestService(t)

	bad := batchItem("oops")
	bad.Format = qrgen.Format("bmp")

	items := []qrgen.Request{
		batchItem("first"),
		batchItem(""), // empty data
		bad,
		batchItem("fourth"),
	}
	arc, err := svc.RenderBatch(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 2, arc.Count)
	assert.Equal(t, []int{1, 2}, arc.Skipped)
	// surviving items keep their positional names
	assert.Equal(t, []string{"qr_1.png", "qr_4.png"}, archiveNames(t, arc.Bytes))
}

func TestRenderBatchEntryNaming(t *testing.T) {
	svc := newTestService(t)

	named := batchItem("named")
	named.Filename = "custom"
	exact := batchItem("exact")
	exact.Filename = "code.png"
	mismatched := batchItem("mismatched")
	mismatched.Filename = "photo.jpg"

	arc, err := svc.RenderBatch(context.Background(),
		[]qrgen.Request{named, exact, mismatched})
	require.NoError(t, err)

	// the extension is appended when missing, never substituted
	assert.Equal(t, []string{"custom.png", "code.png", "photo.jpg.png"},
		archiveNames(t, arc.Bytes))
}

func TestRenderBatchMixedFormats(t *testing.T) {
	svc := newTestService(t)

	svg := batchItem("vector")
	svg.Format = qrgen.FormatSVG
	jpg := batchItem("photo")
	jpg.Format = qrgen.FormatJPEG

	arc, err := svc.RenderBatch(context.Background(),
		[]qrgen.Request{batchItem("raster"), svg, jpg})
	require.NoError(t, err)

	assert.Equal(t, []string{"qr_1.png", "qr_2.svg", "qr_3.jpg"},
		archiveNames(t, arc.Bytes))
}

func TestRenderBatchEmpty(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RenderBatch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, qrgen.ErrInvalidInput))
}
