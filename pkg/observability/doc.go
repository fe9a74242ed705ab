/*
Package observability turns desk session events into Prometheus metrics and
debug log lines, and serves the metrics over HTTP.

	reg := prometheus.NewRegistry()
	m, _ := observability.NewMetrics(reg)
	hooks := m.Hooks().Merge(observability.LogHooks(logger))

	go observability.Serve(ctx, ":9464", observability.NewRouter(reg), logger)
*/
package observability
