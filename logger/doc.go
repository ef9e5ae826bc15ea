/*
Package logger provides logging functionality to a shotglass server by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

A shotglass server in debug mode logs at [LogLevelDebug];
every request line and its headers are then printed.

# ColorLogger

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] shotglass/http/router/router.go:143 'GET /greet/Ada' log_context: {"request":{"method":"GET","url":"/greet/Ada"}}

# SentryLogger

When the SENTRY_DSN environment variable is set,
[NewSentryLogger] wraps a [ColorLogger] and reports errors attached to a [LogContext]
at the Warn, Error and Fatal levels.
*/
package logger
