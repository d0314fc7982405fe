package transport

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/qrforge/qr-api/internal/errors"
	"github.com/qrforge/qr-api/internal/log"
	"github.com/qrforge/qr-api/internal/validation"
	"github.com/qrforge/qr-api/qrgen"
)

type Router struct {
	renderer qrgen.Renderer
	config   *qrgen.Config
	health   *HealthChecker
	engine   *gin.Engine
	logger   *log.Logger
}

func NewRouter(renderer qrgen.Renderer, config *qrgen.Config, health *HealthChecker, logger *log.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	logger = logger.Module("transport")
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("handler panic",
			log.String("path", c.Request.URL.Path),
			log.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"detail": fmt.Sprint(recovered),
		})
	}))
	engine.Use(requestID())
	engine.Use(newCORS(config.CORSAllowedOrigins))

	// Add OpenTelemetry middleware for automatic HTTP tracing
	engine.Use(otelgin.Middleware("qr-service"))

	r := &Router{
		renderer: renderer,
		config:   config,
		health:   health,
		engine:   engine,
		logger:   logger,
	}

	r.setupRoutes()
	return r
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) setupRoutes() {
	r.engine.GET("/generate", r.generateGet)
	r.engine.POST("/generate", r.generatePost)
	r.engine.POST("/batch_generate", r.batchGenerate)
	r.engine.POST("/generate_with_logo", r.generateWithLogo)
	r.engine.POST("/generate_artistic", r.generateArtistic)

	r.engine.GET("/health", r.health.check)
	r.engine.GET("/", r.health.root)
}

func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}

func (r *Router) generateGet(c *gin.Context) {
	var q GenerateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		r.respondValidation(c, err)
		return
	}
	if _, present := c.GetQuery("data"); !present {
		r.respondMissingField(c, "data")
		return
	}
	if q.Data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'data' parameter must not be empty."})
		return
	}
	format, err := qrgen.ParseFormat(q.Format)
	if err != nil {
		r.respondError(c, err)
		return
	}

	req := qrgen.DefaultRequest()
	req.Data = q.Data
	req.Format = format

	res, err := r.renderer.Render(c.Request.Context(), req)
	if err != nil {
		r.respondError(c, err)
		return
	}
	r.respondImage(c, res, format, q.Filename, q.Base64)
}

func (r *Router) generatePost(c *gin.Context) {
	var body GenerateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		r.respondValidation(c, err)
		return
	}
	if body.Data == nil {
		r.respondMissingField(c, "data")
		return
	}
	format, err := qrgen.ParseFormat(body.Format)
	if err != nil {
		r.respondError(c, err)
		return
	}

	res, err := r.renderer.Render(c.Request.Context(), body.toRequest())
	if err != nil {
		r.respondError(c, err)
		return
	}
	r.respondImage(c, res, format, body.Filename, body.Base64)
}

func (r *Router) batchGenerate(c *gin.Context) {
	var body BatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		r.respondValidation(c, err)
		return
	}
	if len(body.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "'items' must be a non-empty list of QR code requests.",
		})
		return
	}
	if len(body.Items) > r.config.MaxBatchItems {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("'items' exceeds the maximum batch size of %d.", r.config.MaxBatchItems),
		})
		return
	}
	var missing []validation.Error
	for idx, item := range body.Items {
		if item.Data == nil {
			missing = append(missing, validation.Error{
				Field:   fmt.Sprintf("items[%d].data", idx),
				Message: "data is required",
			})
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Validation failed",
			"details": missing,
		})
		return
	}

	items := make([]qrgen.Request, len(body.Items))
	for idx := range body.Items {
		items[idx] = body.Items[idx].toRequest()
	}

	arc, err := r.renderer.RenderBatch(c.Request.Context(), items)
	if err != nil {
		r.respondError(c, err)
		return
	}

	c.Header("X-Generated-Count", strconv.Itoa(arc.Count))
	if len(arc.Skipped) > 0 {
		skipped := make([]string, len(arc.Skipped))
		for i, idx := range arc.Skipped {
			skipped[i] = strconv.Itoa(idx)
		}
		c.Header("X-Skipped-Items", strings.Join(skipped, ","))
	}
	c.Header("Content-Disposition", `attachment; filename=qr_codes.zip`)
	c.Data(http.StatusOK, "application/zip", arc.Bytes)
}

func (r *Router) generateWithLogo(c *gin.Context) {
	var form LogoForm
	if err := c.ShouldBind(&form); err != nil {
		r.respondValidation(c, err)
		return
	}
	if _, present := c.GetPostForm("data"); !present {
		r.respondMissingField(c, "data")
		return
	}
	format, err := qrgen.ParseFormat(form.Format)
	if err != nil {
		r.respondError(c, err)
		return
	}

	logo, err := r.readLogo(c)
	if err != nil {
		r.respondError(c, err)
		return
	}

	res, err := r.renderer.Render(c.Request.Context(), form.toRequest(logo))
	if err != nil {
		r.respondError(c, err)
		return
	}
	r.respondImage(c, res, format, form.Filename, form.Base64)
}

// readLogo pulls the optional logo upload out of the multipart form.
// A missing file is fine; an oversized one is a caller error.
func (r *Router) readLogo(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("logo")
	if err != nil {
		return nil, nil
	}
	if header.Size > r.config.MaxLogoBytes {
		return nil, errors.Newf(qrgen.ErrInvalidInput,
			"logo file exceeds the maximum size of %d bytes", r.config.MaxLogoBytes)
	}
	f, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(qrgen.ErrInvalidInput, err, "Invalid logo image file.")
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, r.config.MaxLogoBytes))
}

func (r *Router) generateArtistic(c *gin.Context) {
	var form ArtisticForm
	if err := c.ShouldBind(&form); err != nil {
		r.respondValidation(c, err)
		return
	}
	if _, present := c.GetPostForm("data"); !present {
		r.respondMissingField(c, "data")
		return
	}

	level, err := qrgen.ParseLevel(form.ErrorCorrection)
	if err != nil {
		r.respondError(c, err)
		return
	}

	res, err := r.renderer.RenderArtistic(c.Request.Context(), qrgen.ArtisticRequest{
		Data:   form.Data,
		Dark:   form.Dark,
		Light:  form.Light,
		Border: form.Border,
		Scale:  form.Scale,
		Level:  level,
		Format: qrgen.Format(strings.ToLower(form.Format)),
	})
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, res.MediaType, res.Bytes)
}

// respondImage writes a finished render: a base64 JSON envelope when
// requested, raw bytes otherwise. A filename triggers an attachment
// disposition; its extension is appended when missing, never replaced.
func (r *Router) respondImage(c *gin.Context, res *qrgen.Rendered, format qrgen.Format, filename string, asBase64 bool) {
	if asBase64 {
		c.JSON(http.StatusOK, gin.H{
			"base64":       base64.StdEncoding.EncodeToString(res.Bytes),
			"content_type": res.MediaType,
		})
		return
	}
	if filename != "" {
		name := filename
		if ext := format.Ext(); !strings.HasSuffix(name, ext) {
			name += ext
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	}
	c.Data(http.StatusOK, res.MediaType, res.Bytes)
}

func (r *Router) respondError(c *gin.Context, err error) {
	if errors.Is(err, qrgen.ErrInvalidInput) {
		detail := err.Error()
		if appErr, ok := errors.As[*errors.Error](err); ok {
			detail = (*appErr).Detail()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": detail})
		return
	}
	r.logger.Error("request failed", log.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}

func (r *Router) respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "Validation failed",
		"details": validation.FormatValidationError(err),
	})
}

func (r *Router) respondMissingField(c *gin.Context, field string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error": "Validation failed",
		"details": []validation.Error{
			{Field: field, Message: field + " is required"},
		},
	})
}
