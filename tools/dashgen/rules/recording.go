package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name:   "magento-client-recording-rules",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "magento-client-recording",
					Rules: []Rule{
						{
							Record: "magento_client:api_requests:rate5m",
							Expr:   `sum(rate(magento_client_api_requests_total[5m]))`,
						},
						{
							Record: "magento_client:api_errors:rate5m",
							Expr:   `sum(rate(magento_client_api_requests_total{status=~"5..|error"}[5m]))`,
						},
						{
							Record: "magento_client:api_client_errors:rate5m",
							Expr:   `sum(rate(magento_client_api_requests_total{status=~"4.."}[5m]))`,
						},
						{
							Record: "magento_client:token_refreshes:rate5m",
							Expr:   `sum(rate(magento_client_token_refreshes_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
