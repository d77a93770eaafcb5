// internal/version/version.go
package version

// Version is the fastashuffle release string.
const Version = "0.2.0"
