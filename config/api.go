package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Rasa calls the webhook from inside the cluster; GraphQL preview is read-only
	return []string{"/webhook", "/graphql", "/health"}
}
