package rules

// AlertRules returns a PrometheusRule CR containing alert rules for services
// that call Magento through the client.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name:   "magento-client-alerts",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "magento-client-alerts",
					Rules: []Rule{
						{
							Alert: "MagentoHighErrorRate",
							Expr:  `magento_client:api_errors:rate5m / magento_client:api_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High Magento API error rate",
								"description": "More than 5% of Magento REST calls failed with 5xx or transport errors over the last 5 minutes.",
							},
						},
						{
							Alert: "MagentoSlowResponses",
							Expr:  `histogram_quantile(0.95, sum(rate(magento_client_api_request_duration_seconds_bucket[5m])) by (le)) > 5`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Magento API responses are slow",
								"description": "p95 Magento REST call latency has been above 5s for 10 minutes.",
							},
						},
						{
							Alert: "MagentoLoginFailures",
							Expr:  `increase(magento_client_token_refresh_failures_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Magento admin login is failing",
								"description": "Admin token requests are failing. Check the configured credentials and that the admin account is not locked.",
							},
						},
						{
							Alert: "MagentoTokenChurn",
							Expr:  `magento_client:token_refreshes:rate5m > 0.01`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Admin tokens are refreshed too often",
								"description": "The client requests admin tokens far more often than the token lifetime; tokens may be rejected early or the client recreated per call.",
							},
						},
						{
							Alert: "MagentoClientThrottled",
							Expr:  `histogram_quantile(0.95, sum(rate(magento_client_rate_limit_wait_seconds_bucket[5m])) by (le)) > 1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Magento calls are queued behind the rate limiter",
								"description": "p95 wait on the client-side rate limiter has exceeded 1s for 10 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
