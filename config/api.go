package config

// GetAuthSkipperPaths returns the /api route paths served without
// credentials. Public catalog browsing lives outside /api and never hits
// the auth middleware.
func GetAuthSkipperPaths() []string {
	return []string{"/api/acl"}
}
