package exiodb

var (
	// Version of exiodb, set during the build.
	Version = "v0.1.0"
	// Build timestamp, set during the build.
	Build = "n/a"
)
