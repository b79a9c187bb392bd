package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) string {
	t.Helper()
	return WriteStubScript(t, dir, name, "exit 0\n")
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return WriteStubScript(t, dir, name, fmt.Sprintf("exit %d\n", exitCode))
}

// WriteStubJSON writes an executable shell stub that prints payload on stdout
// and exits 0. Used to fake pac subcommands that emit JSON.
func WriteStubJSON(t *testing.T, dir string, name string, payload string) string {
	t.Helper()
	script := fmt.Sprintf("cat <<'EOF'\n%s\nEOF\nexit 0\n", payload)
	return WriteStubScript(t, dir, name, script)
}

// WriteStubSleep writes an executable shell stub that sleeps for the given
// number of seconds before exiting 0. Used to exercise timeout paths.
func WriteStubSleep(t *testing.T, dir string, name string, seconds int) string {
	t.Helper()
	return WriteStubScript(t, dir, name, fmt.Sprintf("sleep %d\nexit 0\n", seconds))
}

// WriteStubScript writes an executable shell stub with an arbitrary body.
// Returns the absolute path of the stub.
func WriteStubScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + body
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteStubExpectArg writes an executable shell stub that succeeds only when expectedArg is present.
func WriteStubExpectArg(t *testing.T, dir string, name string, expectedArg string) string {
	t.Helper()
	body := fmt.Sprintf("for arg in \"$@\"; do\n  if [ \"$arg\" = \"%s\" ]; then exit 0; fi\ndone\nexit 1\n", expectedArg)
	return WriteStubScript(t, dir, name, body)
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
