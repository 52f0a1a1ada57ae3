package osext

import "os"

// IsDocker detects whether the process is running in a docker container.
func IsDocker() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}
