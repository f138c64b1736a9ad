package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing Magento API calls per
// second by HTTP method.
func RequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Request Rate").
		Description("Magento REST calls per second by HTTP method").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (method) (rate(magento_client_api_requests_total[5m]))`,
			"{{method}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LatencyPercentiles returns a timeseries panel showing p50, p95 and p99
// Magento call latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	q := func(quantile string) string {
		return fmt.Sprintf(
			`histogram_quantile(%s, sum(rate(magento_client_api_request_duration_seconds_bucket[5m])) by (le))`,
			quantile,
		)
	}
	return timeseries.NewPanelBuilder().
		Title("Latency Percentiles").
		Description("Magento REST call duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(q("0.50"), "p50", "A")).
		WithTarget(PromQuery(q("0.95"), "p95", "B")).
		WithTarget(PromQuery(q("0.99"), "p99", "C")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ErrorRate returns a timeseries panel showing server and transport errors
// as a percentage of all calls.
func ErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Error Rate %").
		Description("5xx responses and transport failures as percentage of total calls").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`magento_client:api_errors:rate5m / magento_client:api_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StatusBreakdown returns a timeseries panel showing call rate by response
// status.
func StatusBreakdown() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Responses by Status").
		Description("Calls per second by HTTP status; \"error\" marks transport failures").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (status) (rate(magento_client_api_requests_total[5m]))`,
			"{{status}}", "A",
		)).
		Unit("reqps").
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// ClientErrors returns a stat panel showing the 4xx rate, which covers
// missing entities and rejected checkout input.
func ClientErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("4xx Rate").
		Description("Calls rejected by Magento with a 4xx status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`magento_client:api_client_errors:rate5m`, "", "A")).
		Unit("reqps").
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// TargetsUp returns a stat panel counting scrape targets that export the
// client metrics and are up.
func TargetsUp() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Targets Up").
		Description("Scrape targets exporting Magento client metrics").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`count(up == 1 and on (job, instance) group by (job, instance) (magento_client_api_requests_total))`,
			"", "A",
		)).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// CallsToday returns a stat panel with the number of calls in the last 24h.
func CallsToday() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Calls (24h)").
		Description("Magento REST calls in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(magento_client_api_requests_total[24h]))`, "", "A")).
		Unit("short").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}
