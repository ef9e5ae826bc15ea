/*
The middleware package defines what a middleware is in shotglass and a set of basic middlewares.

The available middlewares are:
  - Authorize
  - CORS
  - InjectIPAddress
  - LogRequest
  - Metrics
  - RateLimit
  - ReportPanic
  - RequestID
  - Serialize
  - Trace

ranger assembles its default chain from configuration;
to build one by hand, the following can be copy-pasted:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(middleware.NewVisitors(5, 20)),
		middleware.Metrics(),
		middleware.Trace(""),
	}
*/
package middleware
