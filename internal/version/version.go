package version

import "fmt"

// Version is set at build time via ldflags
var Version = "dev"

// UserAgent identifies this client against the Neon API.
func UserAgent() string {
	return fmt.Sprintf("neon-branch/%s", Version)
}
