/*
Package router dispatches HTTP requests to the handlers of registered routes.

A [*Router] is an [http.Handler].
Routes are registered by HTTP method with [Router.Handle] or,
grouped into GET and POST routes, with [Router.RegisterRoutes].
Each [route.Route] pairs a path template such as "/greet/$name$"
with a [route.Handler] and the query parameters it accepts.
Longer templates are tried first, so "/greet/everyone" wins over "/greet/$name$".

Files on disk are served with [Router.AddStaticPaths].
[IndexHandler] generates a page linking to a set of those files.

A [*Router] is configured with [RouterOptFn]s.
[WithAuth] puts every request behind basic authentication
and [WithFailFast] turns any handler fault into a server shutdown.

Routing happens once a [*Router] starts serving;
routes cannot be added after that point.
*/
package router
