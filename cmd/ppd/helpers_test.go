package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerdesk/powerdesk/internal/testutil"
)

// pacStub is a pac fake that answers the version probe and the metadata
// subcommands the CLI tests exercise.
const pacStub = `case "$1" in
--version)
  echo "1.30.0"
  ;;
org)
  case "$2" in
  list)
    cat <<'EOF'
[
  {"EnvironmentName": "dev-env", "FriendlyName": "Dev", "EnvironmentUrl": "https://dev.crm.dynamics.com", "EnvironmentType": "Sandbox", "Region": "unitedstates", "State": "Ready"},
  {"EnvironmentName": "prod-env", "FriendlyName": "Prod", "EnvironmentUrl": "https://prod.crm.dynamics.com", "EnvironmentType": "Production", "Region": "europe", "State": "Ready"}
]
EOF
    ;;
  select)
    exit 0
    ;;
  who)
    cat <<'EOF'
{"FriendlyName": "Dev User", "UserPrincipalName": "dev@contoso.com", "OrganizationFriendlyName": "Contoso", "OrganizationUrl": "https://dev.crm.dynamics.com"}
EOF
    ;;
  esac
  ;;
solution)
  case "$2" in
  list)
    cat <<'EOF'
[{"SolutionUniqueName": "CoreApp", "FriendlyName": "Core App", "VersionNumber": "1.2.0.0", "IsManaged": false}]
EOF
    ;;
  export|import)
    exit 0
    ;;
  esac
  ;;
auth)
  exit 0
  ;;
esac
exit 0
`

// writeSettings writes a settings file pointing pac at the stub and returns
// its path.
func writeSettings(t *testing.T, stubPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := fmt.Sprintf("[pac]\nexecutable = %q\n", stubPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCommand executes the CLI against the stub settings and returns stdout.
func runCommand(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"ppd"}, args...)
	full = append(full, "--config", configPath)
	err := execute(full, &stdout, &stderr)
	return stdout.String(), err
}

func newPacStub(t *testing.T) string {
	t.Helper()
	return testutil.WriteStubScript(t, t.TempDir(), "pac", pacStub)
}
