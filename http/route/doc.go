/*
Package route matches request paths against route templates.

A template is a "/"-delimited path whose segments are either literal text
or a variable, written between two "$" markers:

	/greet/$name$
	/plans/$plan$/steps/$step$

[ParseTemplate] turns a template into [Segment]s once, at registration.
[Template.Match] then compares a concrete path against it:
paths match only when they have the same number of segments,
literal segments compare case-insensitively,
and every variable segment is captured, in order,
with "_" replaced by a space and percent-escapes decoded.
There is no prefix matching, no wildcard spanning segments, and no regular expression.

A [Table] keeps the routes registered for each HTTP method ordered by specificity:
longer templates are tried before shorter ones,
and templates of equal length keep the order they were registered in.
[Table.Resolve] returns the first route that matches.

Every [Route] carries a [Params] allow-list.
Query parameters not on that list never reach the route's [Handler].
*/
package route
