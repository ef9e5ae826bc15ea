/*
Package req provides ergonomics for handling the payload of a routed request.

Package req parses a [route.Request]'s JSON body or allowed query parameters
into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct: "json" for bodies, "schema" for parameters.
Second, for validating the payload's data meets requirements: "validate".

Notably, the parade of errors that may propagate from such a task
are translated to shotglass sentinel errors in order to provide a consistent interface
for issues that arise across encoding types.
A payload failing validation returns [ValidationErrors],
which wrap [shotglass.ErrNotValid] and encode as JSON.
*/
package req
