// Package server exposes the solver comparison over HTTP.
//
// Endpoints:
//
//	GET /compare    runs the selected methods and returns the results as JSON
//	GET /scenarios  lists the built-in scenarios
//	GET /health     liveness probe
//	GET /metrics    Prometheus metrics
//
// Every route goes through SecurityMiddleware, then the metrics and logging
// middleware.
package server
