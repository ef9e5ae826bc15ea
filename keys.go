package shotglass

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request being handled by shotglass.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// RouteKey stashes the template of the route an HTTP request resolved to.
	RouteKey Key = "RouteKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "shotglass context key: " + string(k)
}

// Version follows semantic versioning 2.0.0: https://semver.org/
const Version = "0.1.0"
