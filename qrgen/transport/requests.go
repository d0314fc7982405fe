package transport

import (
	"strings"

	"github.com/qrforge/qr-api/qrgen"
)

// GenerateQuery is the query string of GET /generate. Styling is not
// exposed on the GET form; it always renders with the defaults.
type GenerateQuery struct {
	Data     string `form:"data"`
	Format   string `form:"format,default=png"`
	Filename string `form:"filename" binding:"omitempty,qrfilename"`
	Base64   bool   `form:"base64"`
}

// GenerateBody is the JSON body of POST /generate and the element type
// of POST /batch_generate. Absent fields fall back to the documented
// defaults; border needs a pointer because zero is a meaningful width.
type GenerateBody struct {
	// Data is a pointer so an absent field (a schema violation) can be
	// told apart from an explicit empty string (a business rejection).
	Data            *string `json:"data"`
	BoxSize         int     `json:"box_size" binding:"omitempty,qrboxsize"`
	Border          *int    `json:"border" binding:"omitempty,qrborder"`
	FillColor       string  `json:"fill_color"`
	BackColor       string  `json:"back_color"`
	Version         int     `json:"version" binding:"omitempty,qrversion"`
	ErrorCorrection string  `json:"error_correction"`
	Format          string  `json:"format"`
	Filename        string  `json:"filename" binding:"omitempty,qrfilename"`
	Base64          bool    `json:"base64"`
}

// toRequest maps the body onto a request, filling defaults for absent
// fields. The format is passed through raw; the renderer validates it
// so batch items get skip semantics instead of a request-wide error.
func (b *GenerateBody) toRequest() qrgen.Request {
	req := qrgen.DefaultRequest()
	if b.Data != nil {
		req.Data = *b.Data
	}
	if b.BoxSize != 0 {
		req.BoxSize = b.BoxSize
	}
	if b.Border != nil {
		req.Border = *b.Border
	}
	if b.FillColor != "" {
		req.FillColor = b.FillColor
	}
	if b.BackColor != "" {
		req.BackColor = b.BackColor
	}
	if b.Version != 0 {
		req.Version = b.Version
	}
	req.Level = qrgen.NormalizeLevel(b.ErrorCorrection)
	req.Format = qrgen.Format(strings.ToLower(b.Format))
	req.Filename = b.Filename
	return req
}

// BatchBody is the JSON body of POST /batch_generate. Items are dived
// into so each one gets the same field validation as a single request.
type BatchBody struct {
	Items []GenerateBody `json:"items" binding:"omitempty,dive"`
}

// LogoForm is the multipart form of POST /generate_with_logo. The
// error correction level is not a parameter; the pipeline forces H so
// the symbol survives the overlay. The base64 flag field is named
// "base64_" for compatibility with existing clients.
type LogoForm struct {
	Data      string `form:"data"`
	BoxSize   int    `form:"box_size,default=10" binding:"omitempty,qrboxsize"`
	Border    int    `form:"border,default=4" binding:"omitempty,qrborder"`
	FillColor string `form:"fill_color,default=black"`
	BackColor string `form:"back_color,default=white"`
	Version   int    `form:"version,default=1" binding:"omitempty,qrversion"`
	Format    string `form:"format,default=png"`
	Filename  string `form:"filename" binding:"omitempty,qrfilename"`
	Base64    bool   `form:"base64_"`
}

func (f *LogoForm) toRequest(logo []byte) qrgen.Request {
	return qrgen.Request{
		Data:      f.Data,
		BoxSize:   f.BoxSize,
		Border:    f.Border,
		FillColor: f.FillColor,
		BackColor: f.BackColor,
		Version:   f.Version,
		Level:     qrgen.LevelH,
		Format:    qrgen.Format(strings.ToLower(f.Format)),
		Filename:  f.Filename,
		Logo:      logo,
	}
}

// ArtisticForm is the form body of POST /generate_artistic.
type ArtisticForm struct {
	Data            string `form:"data"`
	Dark            string `form:"dark,default=#000"`
	Light           string `form:"light,default=#fff"`
	Border          int    `form:"border,default=4" binding:"omitempty,qrborder"`
	Scale           int    `form:"scale,default=10" binding:"omitempty,qrscale"`
	ErrorCorrection string `form:"error_correction,default=L"`
	Format          string `form:"format,default=png"`
}
