package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// TokenRefreshes returns a timeseries panel showing admin token requests.
// A healthy client logs in roughly once per token lifetime.
func TokenRefreshes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Token Refreshes").
		Description("Admin token requests per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`magento_client:token_refreshes:rate5m`, "refreshes/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// TokenFailures returns a stat panel showing failed logins in the last hour.
func TokenFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Failed Logins (1h)").
		Description("Admin token requests rejected or failed in the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(magento_client_token_refresh_failures_total[1h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
