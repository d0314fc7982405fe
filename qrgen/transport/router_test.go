package transport

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/qrforge/qr-api/internal/log"
	"github.com/qrforge/qr-api/qrgen"
	"github.com/qrforge/qr-api/qrgen/mocks"
	"github.com/qrforge/qr-api/qrgen/render"
)

func testConfig() *qrgen.Config {
	return &qrgen.Config{
		MaxLogoBytes:       4 << 20,
		MaxBatchItems:      100,
		CORSAllowedOrigins: []string{"*"},
	}
}

func setupRouter(t *testing.T) *Router {
	gin.SetMode(gin.TestMode)
	logger := log.NewTest(t)
	renderer := render.New(logger)
	health := NewHealthChecker(renderer, t.TempDir(), clockwork.NewFakeClock(), logger)
	return NewRouter(renderer, testConfig(), health, logger)
}

func setupMockRouter(t *testing.T) (*Router, *mocks.MockRenderer) {
	gin.SetMode(gin.TestMode)
	logger := log.NewTest(t)
	renderer := mocks.NewMockRenderer(gomock.NewController(t))
	health := NewHealthChecker(renderer, t.TempDir(), clockwork.NewFakeClock(), logger)
	return NewRouter(renderer, testConfig(), health, logger), renderer
}

func doRequest(router *Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func postJSON(router *Router, path string, payload any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return doRequest(router, req)
}

func postForm(router *Router, path string, values url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(router, req)
}

func decodePNG(t *testing.T, data []byte) image.Image {
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestGenerateGet(t *testing.T) {
	router := setupRouter(t)

	t.Run("Success", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/generate?data=hello", nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Empty(t, w.Header().Get("Content-Disposition"))

		img := decodePNG(t, w.Body.Bytes())
		assert.Equal(t, 290, img.Bounds().Dx())
	})

	t.Run("MissingData", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/generate", nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Validation failed", jsonBody(t, w)["error"])
	})

	t.Run("EmptyData", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/generate?data=", nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "'data' parameter must not be empty.", jsonBody(t, w)["error"])
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/generate?data=hello&format=bmp", nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t,
			"Unsupported format 'bmp'. Supported formats: jpeg, png, svg.",
			jsonBody(t, w)["error"])
	})

	t.Run("SVG", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/generate?data=hello&format=svg", nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	})

	t.Run("Base64Envelope", func(t *testing.T) {
		plain, _ := http.NewRequest("GET", "/generate?data=hello", nil)
		rawResp := doRequest(router, plain)

		encoded, _ := http.NewRequest("GET", "/generate?data=hello&base64=true", nil)
		w := doRequest(router, encoded)

		assert.Equal(t, http.StatusOK, w.Code)
		body := jsonBody(t, w)
		assert.Equal(t, "image/png", body["content_type"])

		decoded, err := base64.StdEncoding.DecodeString(body["base64"].(string))
		require.NoError(t, err)
		assert.Equal(t, rawResp.Body.Bytes(), decoded)
	})
}

func TestGenerateGetFilename(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"NoExtension", "filename=mycode", `attachment; filename="mycode.png"`},
		{"MatchingExtension", "filename=mycode.png", `attachment; filename="mycode.png"`},
		{"ForeignExtension", "filename=mycode.jpg", `attachment; filename="mycode.jpg.png"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/generate?data=hello&"+tt.query, nil)
			w := doRequest(router, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, w.Header().Get("Content-Disposition"))
		})
	}

	t.Run("InvalidFilename", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/generate?data=hello&filename="+url.QueryEscape("../evil"), nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Validation failed", jsonBody(t, w)["error"])
	})
}

func TestGeneratePost(t *testing.T) {
	router := setupRouter(t)

	t.Run("Styling", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{
			"data":       "hello",
			"box_size":   2,
			"border":     1,
			"fill_color": "#102030",
			"back_color": "white",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		img := decodePNG(t, w.Body.Bytes())
		assert.Equal(t, 46, img.Bounds().Dx()) // (21+2)*2
	})

	t.Run("ZeroBorder", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{
			"data":   "hello",
			"border": 0,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		img := decodePNG(t, w.Body.Bytes())
		assert.Equal(t, 210, img.Bounds().Dx())
	})

	t.Run("UnknownErrorCorrectionFallsBack", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{
			"data":             "hello",
			"error_correction": "Z",
		})

		// unknown levels silently fall back to L
		assert.Equal(t, http.StatusOK, w.Code)
		img := decodePNG(t, w.Body.Bytes())
		assert.Equal(t, 290, img.Bounds().Dx())
	})

	t.Run("MissingData", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{"format": "png"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Validation failed", jsonBody(t, w)["error"])
	})

	t.Run("EmptyData", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{"data": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "'data' field must not be empty.", jsonBody(t, w)["error"])
	})

	t.Run("OutOfRangeBoxSize", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{
			"data":     "hello",
			"box_size": -3,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := jsonBody(t, w)
		assert.Equal(t, "Validation failed", body["error"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("InvalidColor", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{
			"data":       "hello",
			"fill_color": "notacolor",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid color 'notacolor'", jsonBody(t, w)["error"])
	})

	t.Run("Base64Envelope", func(t *testing.T) {
		w := postJSON(router, "/generate", map[string]any{
			"data":   "hello",
			"base64": true,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		body := jsonBody(t, w)
		assert.Equal(t, "image/png", body["content_type"])
		assert.NotEmpty(t, body["base64"])
	})
}

func TestBatchGenerate(t *testing.T) {
	router := setupRouter(t)

	t.Run("Success", func(t *testing.T) {
		w := postJSON(router, "/batch_generate", map[string]any{
			"items": []map[string]any{
				{"data": "first"},
				{"data": ""},
				{"data": "third", "filename": "custom"},
			},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=qr_codes.zip`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "2", w.Header().Get("X-Generated-Count"))
		assert.Equal(t, "1", w.Header().Get("X-Skipped-Items"))

		zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
		require.NoError(t, err)
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"qr_1.png", "custom.png"}, names)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		w := postJSON(router, "/batch_generate", map[string]any{"items": []any{}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t,
			"'items' must be a non-empty list of QR code requests.",
			jsonBody(t, w)["error"])
	})

	t.Run("MissingItemData", func(t *testing.T) {
		w := postJSON(router, "/batch_generate", map[string]any{
			"items": []map[string]any{{"format": "png"}},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Validation failed", jsonBody(t, w)["error"])
	})

	t.Run("OutOfRangeItem", func(t *testing.T) {
		w := postJSON(router, "/batch_generate", map[string]any{
			"items": []map[string]any{
				{"data": "fine"},
				{"data": "broken", "box_size": -3},
			},
		})

		// structurally bad items fail the whole envelope, they are
		// not skipped
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := jsonBody(t, w)
		assert.Equal(t, "Validation failed", body["error"])
		assert.NotEmpty(t, body["details"])
	})

	t.Run("TooManyItems", func(t *testing.T) {
		items := make([]map[string]any, 101)
		for i := range items {
			items[i] = map[string]any{"data": "x"}
		}
		w := postJSON(router, "/batch_generate", map[string]any{"items": items})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func logoPNG(t *testing.T, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path string, fields map[string]string, logo []byte) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if logo != nil {
		fw, err := mw.CreateFormFile("logo", "logo.png")
		require.NoError(t, err)
		_, err = fw.Write(logo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestGenerateWithLogo(t *testing.T) {
	router := setupRouter(t)

	t.Run("Success", func(t *testing.T) {
		red := color.RGBA{0xff, 0x00, 0x00, 0xff}
		req := multipartRequest(t, "/generate_with_logo",
			map[string]string{"data": "hello"}, logoPNG(t, red))
		w := doRequest(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		img := decodePNG(t, w.Body.Bytes())
		side := img.Bounds().Dx()
		center := color.RGBAModel.Convert(img.At(side/2, side/2)).(color.RGBA)
		assert.Equal(t, red, center)
	})

	t.Run("WithoutLogo", func(t *testing.T) {
		req := multipartRequest(t, "/generate_with_logo",
			map[string]string{"data": "hello"}, nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("InvalidLogo", func(t *testing.T) {
		req := multipartRequest(t, "/generate_with_logo",
			map[string]string{"data": "hello"}, []byte("not an image"))
		w := doRequest(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid logo image file.", jsonBody(t, w)["error"])
	})

	t.Run("MissingData", func(t *testing.T) {
		req := multipartRequest(t, "/generate_with_logo",
			map[string]string{"format": "png"}, nil)
		w := doRequest(router, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGenerateArtistic(t *testing.T) {
	router := setupRouter(t)

	t.Run("PNG", func(t *testing.T) {
		w := postForm(router, "/generate_artistic", url.Values{"data": {"hello"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		decodePNG(t, w.Body.Bytes())
	})

	t.Run("SVG", func(t *testing.T) {
		w := postForm(router, "/generate_artistic", url.Values{
			"data":   {"hello"},
			"format": {"svg"},
			"dark":   {"navy"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `fill="#000080"`)
	})

	t.Run("RejectsJPEG", func(t *testing.T) {
		w := postForm(router, "/generate_artistic", url.Values{
			"data":   {"hello"},
			"format": {"jpeg"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t,
			"Only PNG and SVG formats are supported for artistic QR codes.",
			jsonBody(t, w)["error"])
	})

	t.Run("InvalidErrorCorrection", func(t *testing.T) {
		w := postForm(router, "/generate_artistic", url.Values{
			"data":             {"hello"},
			"error_correction": {"Z"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid error correction level 'Z'", jsonBody(t, w)["error"])
	})

	t.Run("EmptyData", func(t *testing.T) {
		w := postForm(router, "/generate_artistic", url.Values{"data": {""}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "'data' field must not be empty.", jsonBody(t, w)["error"])
	})
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := doRequest(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := jsonBody(t, w)
	assert.Equal(t, "healthy", body["status"])

	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)

	fs := body["filesystem"].(map[string]any)
	assert.Equal(t, true, fs["data_dir_writable"])
	assert.Equal(t, "writable", fs["write_test"])
}

func TestRoot(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest("GET", "/", nil)
	w := doRequest(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := jsonBody(t, w)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "/health", body["health_check"])
}

func TestRendererFailure(t *testing.T) {
	router, renderer := setupMockRouter(t)

	renderer.EXPECT().
		Render(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("encoder exploded"))

	req, _ := http.NewRequest("GET", "/generate?data=hello", nil)
	w := doRequest(router, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "encoder exploded", jsonBody(t, w)["detail"])
}

func TestRequestIDHeader(t *testing.T) {
	router := setupRouter(t)

	t.Run("Generated", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/", nil)
		w := doRequest(router, req)

		assert.NotEmpty(t, w.Header().Get(headerRequestID))
	})

	t.Run("Propagated", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(headerRequestID, "abc-123")
		w := doRequest(router, req)

		assert.Equal(t, "abc-123", w.Header().Get(headerRequestID))
	})
}
