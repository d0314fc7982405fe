package render

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/qrforge/qr-api/internal/otel"
	"github.com/qrforge/qr-api/qrgen"
)

var (
	renderCounter      metric.Int64Counter
	renderFailures     metric.Int64Counter
	renderDuration     metric.Float64Histogram
	batchItemsRendered metric.Int64Counter
	batchItemsSkipped  metric.Int64Counter
	logoOverlays       metric.Int64Counter
)

func init() {
	factory := otel.NewFactory("qrgen/render", otel.PrefixQRService)

	factory.Int64Counter(&renderCounter, "renders_total",
		metric.WithDescription("completed renders by format and pipeline"))
	factory.Int64Counter(&renderFailures, "render_failures_total",
		metric.WithDescription("failed renders by pipeline"))
	factory.Float64Histogram(&renderDuration, "render_duration_seconds",
		metric.WithDescription("wall time of one render"),
		metric.WithUnit("s"))
	factory.Int64Counter(&batchItemsRendered, "batch_items_rendered_total",
		metric.WithDescription("batch items packed into an archive"))
	factory.Int64Counter(&batchItemsSkipped, "batch_items_skipped_total",
		metric.WithDescription("batch items dropped as invalid"))
	factory.Int64Counter(&logoOverlays, "logo_overlays_total",
		metric.WithDescription("renders with a logo composited in"))
}

func recordRender(ctx context.Context, pipeline string, format qrgen.Format, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("format", string(format)),
	)
	renderDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		renderFailures.Add(ctx, 1, attrs)
		return
	}
	renderCounter.Add(ctx, 1, attrs)
}
