/*
Package auth gates every request to a shotglass server behind HTTP basic authentication.

A [Gate] is built once from a [Config] before the server starts.
When the Config is not enabled, every request is authorized.
When it is, a request must carry

	Authorization: Basic <base64(username:password)>

matching the configured username and password exactly.

Basic authentication sends the password in the clear;
it is only meaningful behind a transport that encrypts the connection,
which shotglass does not provide itself.
*/
package auth
