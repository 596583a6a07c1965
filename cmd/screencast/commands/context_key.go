package commands

// Custom context key types to avoid collisions
type loggerContextKey struct{}
type configContextKey struct{}
