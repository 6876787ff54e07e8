package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm.pid")

	if running, _ := IsServerRunning(path); running {
		t.Fatal("no PID file should mean not running")
	}

	if err := ClaimPIDFile(path); err != nil {
		t.Fatalf("ClaimPIDFile() error = %v", err)
	}
	running, pid := IsServerRunning(path)
	if !running || pid != os.Getpid() {
		t.Fatalf("IsServerRunning() = %v, %d; want true, %d", running, pid, os.Getpid())
	}

	// claiming again from the same process is fine
	if err := ClaimPIDFile(path); err != nil {
		t.Fatalf("ClaimPIDFile() second call error = %v", err)
	}

	RemovePIDFile(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("PID file still present: %v", err)
	}
}

func TestPIDFile_StaleOrCorrupt(t *testing.T) {
	tests := map[string]string{
		"corrupt":  "not-a-pid",
		"negative": "-4",
		// PIDs this large are never handed out
		"stale": strconv.Itoa(1 << 30),
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "atm.pid")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			if running, _ := IsServerRunning(path); running {
				t.Fatalf("IsServerRunning() = true for %s PID file", name)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("%s PID file was not cleaned up", name)
			}
		})
	}
}
