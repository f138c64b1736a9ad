package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RateLimitWait returns a timeseries panel showing p95 time spent waiting
// on the client-side rate limiter.
func RateLimitWait() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rate Limiter Wait p95").
		Description("Time calls spend queued behind the client-side rate limiter").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(magento_client_rate_limit_wait_seconds_bucket[5m])) by (le))`,
			"p95", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.5, 2)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ThrottledCalls returns a timeseries panel showing how many calls per
// second passed through the limiter.
func ThrottledCalls() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Limiter Throughput").
		Description("Calls per second admitted by the client-side rate limiter").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(magento_client_rate_limit_wait_seconds_count[5m]))`,
			"calls/s", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
