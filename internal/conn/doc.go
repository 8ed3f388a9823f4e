package conn

// Package conn contains listener-side connection plumbing: TCP listening
// with SO_REUSEADDR and keepalive configuration applied to accepted
// connections.
