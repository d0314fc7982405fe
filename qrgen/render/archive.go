package render

import (
	"archive/zip"
	"bytes"

	"github.com/pkg/errors"
)

type archiveEntry struct {
	name string
	data []byte
}

// buildArchive packs entries into a deflate-compressed zip.
func buildArchive(entries []archiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, errors.Wrapf(err, "create archive entry %s", e.name)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, errors.Wrapf(err, "write archive entry %s", e.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize archive")
	}
	return buf.Bytes(), nil
}
