/*
Package ranger initializes and manages a shotglass web server with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New].
Routes are registered through the [*router.Router] a [Ranger] embeds.

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [ProductionPort] (:80),
or [DebugPort] (:8080) when configured [WithDebug].

Upon calling [*Ranger.Guide], all routes configured up to that point are now active
and no more can be registered.
Stop that web server with [*Ranger.Shutdown], [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a shotglass server through environment variables
and by passing a [RangerOption] to [New].
Options passed to [New] win over environment variables.

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASIC_AUTH_PASSWORD: the password every request must authenticate with; requires BASIC_AUTH_USER
  - BASIC_AUTH_USER: the username every request must authenticate with; requires BASIC_AUTH_PASSWORD
  - CORS_ORIGIN: the origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the application is running in; cf. [shotglass.Environment]
  - FAIL_FAST: "true" shuts the server down whenever a handler fails; default: false
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - METRICS_NAMESPACE: the prefix of every request metric name; default: shotglass
  - METRICS_PATH: the path Prometheus metrics are exposed at, behind basic auth when enabled; default: none
  - PORT: the port the application should listen on; default: :80, or :8080 in debug mode
  - RATE_LIMIT: the requests per second each IP address is allowed; default: unlimited
  - SENTRY_DSN: the Sentry project warnings and errors are reported to; default: none
  - SERIAL_REQUESTS: "true" answers only one request at a time; default: false
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_MAX_BODY_BYTES: the largest POST body accepted; default: unlimited
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
