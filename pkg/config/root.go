package config

import "os"

const (
	// markerFile identifies the root server of a Rudder installation.
	markerFile = "/opt/rudder/etc/uuid.hive"

	// rootServerURL is the API endpoint used by default when running on
	// the root server itself.
	rootServerURL = "https://localhost/rudder"
)

// isRootServer reports whether the local host is the Rudder root server.
// Any failure to read the marker file counts as not being one.
func isRootServer(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return string(content) == "root\n"
}
