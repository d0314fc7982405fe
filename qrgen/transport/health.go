package transport

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/qrforge/qr-api/internal/log"
	"github.com/qrforge/qr-api/qrgen"
)

// HealthChecker backs GET /health and GET /. The health probe is
// active: it runs a throwaway render and a filesystem write so a bad
// deploy shows up here before it shows up in traffic.
type HealthChecker struct {
	renderer qrgen.Renderer
	dataDir  string
	clock    clockwork.Clock
	logger   *log.Logger
}

func NewHealthChecker(renderer qrgen.Renderer, dataDir string, clock clockwork.Clock, logger *log.Logger) *HealthChecker {
	return &HealthChecker{
		renderer: renderer,
		dataDir:  dataDir,
		clock:    clock,
		logger:   logger.Module("health"),
	}
}

func (h *HealthChecker) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "online",
		"message":      "QR Code Generator API is running",
		"health_check": "/health",
		"data_dir":     h.dataDir,
	})
}

func (h *HealthChecker) check(c *gin.Context) {
	probe := qrgen.DefaultRequest()
	probe.Data = "test"
	if _, err := h.renderer.Render(c.Request.Context(), probe); err != nil {
		h.logger.Error("health probe render failed", log.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	writable := true
	writeTest := "writable"
	testFile := filepath.Join(h.dataDir, "test_health.txt")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		writable = false
		writeTest = fmt.Sprintf("not writable: %v", err)
	} else {
		os.Remove(testFile)
	}

	exists := false
	if info, err := os.Stat(h.dataDir); err == nil && info.IsDir() {
		exists = true
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  h.clock.Now().Format(time.RFC3339),
		"go_version": runtime.Version(),
		"platform":   runtime.GOOS + "/" + runtime.GOARCH,
		"filesystem": gin.H{
			"data_dir":          h.dataDir,
			"data_dir_exists":   exists,
			"data_dir_writable": writable,
			"write_test":        writeTest,
		},
		"dependencies": dependencyVersions(),
	})
}

var dependencyNames = map[string]string{
	"github.com/gin-gonic/gin":       "gin",
	"github.com/skip2/go-qrcode":     "go-qrcode",
	"github.com/yeqown/go-qrcode/v2": "go-qrcode-artistic",
	"golang.org/x/image":             "x-image",
}

// dependencyVersions reports the resolved versions of the libraries
// the service leans on. Empty when built without module info.
func dependencyVersions() map[string]string {
	deps := make(map[string]string, len(dependencyNames))
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return deps
	}
	for _, d := range info.Deps {
		if name, ok := dependencyNames[d.Path]; ok {
			deps[name] = d.Version
		}
	}
	return deps
}
