// Package version provides application version information.
// The version can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/commander-analyzer/internal/version.Version=v1.2.3"
package version

// Version is the application version. It defaults to "dev" and can be
// overridden at build time using ldflags.
var Version = "dev"

// UserAgent is sent with every outgoing HTTP request.
func UserAgent() string {
	return "commander-analyzer/" + Version
}
