package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/atm-go/internal"
)

// DefaultPIDFile is where `serve` records its process ID
func DefaultPIDFile() string {
	return filepath.Join(os.TempDir(), internal.DefaultAppName+"-server.pid")
}

// WritePIDFile writes the process ID to a file
func WritePIDFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644)
}

// RemovePIDFile removes the PID file
func RemovePIDFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		internal.GetLogger().Warn(internal.ComponentCLI, "Could not remove PID file %s: %v", path, err)
	}
}

// IsServerRunning checks if the server is already running by looking for a PID file
// and verifying if the process with that PID exists. Stale PID files are removed.
func IsServerRunning(path string) (bool, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		// PID file doesn't exist or can't be read
		return false, 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		// The PID file is corrupt
		RemovePIDFile(path)
		return false, 0
	}

	// On Unix-like systems, os.FindProcess always succeeds, so we need to send
	// signal 0 to actually check if the process exists
	process, err := os.FindProcess(pid)
	if err == nil {
		err = process.Signal(syscall.Signal(0))
	}
	if err != nil {
		RemovePIDFile(path)
		return false, 0
	}

	return true, pid
}

// ClaimPIDFile fails when another live process owns path, otherwise records
// the current process in it.
func ClaimPIDFile(path string) error {
	if running, pid := IsServerRunning(path); running && pid != os.Getpid() {
		return fmt.Errorf("server already running with PID %d (%s)", pid, path)
	}
	return WritePIDFile(path, os.Getpid())
}
