// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/ptchr/magento2-rest-client/tools/dashgen/panels"
)

// BuildOverview constructs the Magento Client dashboard with API,
// authentication and throttling rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Magento Client").
		Uid("magento-client").
		Tags([]string{"magento", "magento-client"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.TargetsUp()).
		WithPanel(panels.CallsToday()))

	b.WithRow(dashboard.NewRowBuilder("API Calls").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.StatusBreakdown()).
		WithPanel(panels.ClientErrors()))

	b.WithRow(dashboard.NewRowBuilder("Authentication").
		WithPanel(panels.TokenRefreshes()).
		WithPanel(panels.TokenFailures()))

	b.WithRow(dashboard.NewRowBuilder("Throttling").
		WithPanel(panels.RateLimitWait()).
		WithPanel(panels.ThrottledCalls()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
