package router

// openRoutes are reachable without a session
var openRoutes = map[string]struct{}{
	PathHome:       {},
	PathLogin:      {},
	PathRegister:   {},
	PathAdminLogin: {},
}

// IsOpen reports whether path is on the unauthenticated allow-list. Matching is exact.
func IsOpen(path string) bool {
	_, ok := openRoutes[path]
	return ok
}

// Guard returns the path the request must be replaced with, if any.
// Only authentication is checked; role enforcement is left to the API.
func Guard(authenticated bool, path string) (target string, redirected bool) {
	if authenticated || IsOpen(path) {
		return path, false
	}
	return PathHome, true
}
