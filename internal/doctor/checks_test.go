package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerdesk/powerdesk/internal/config"
	"github.com/powerdesk/powerdesk/internal/paccli"
	"github.com/powerdesk/powerdesk/internal/testutil"
)

func TestCheckToolOK(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteStubJSON(t, dir, "pac", "1.30.0")

	result := CheckTool(context.Background(), path)
	require.Equal(t, StatusOK, result.Status)
	require.Contains(t, result.Message, "1.30.0")
}

func TestCheckToolMissing(t *testing.T) {
	result := CheckTool(context.Background(), "/nonexistent/pac")
	require.Equal(t, StatusFail, result.Status)
	require.NotEmpty(t, result.Recommendation)
}

func TestCheckToolProbeFails(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteStubWithExit(t, dir, "pac", 1)

	result := CheckTool(context.Background(), path)
	require.Equal(t, StatusFail, result.Status)
}

func TestCheckSettingsMissingFileWarns(t *testing.T) {
	result, cfg := CheckSettings(filepath.Join(t.TempDir(), "absent.toml"))
	require.Equal(t, StatusWarn, result.Status)
	require.Equal(t, config.Default(), cfg)
}

func TestCheckSettingsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, config.Template(), 0o644))

	result, cfg := CheckSettings(path)
	require.Equal(t, StatusOK, result.Status)
	require.Equal(t, config.Default(), cfg)
}

func TestCheckSettingsInvalidFallsBackLenient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "[pac]\ntimeout_seconds = 45\nbogus_key = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, cfg := CheckSettings(path)
	require.Equal(t, StatusFail, result.Status)
	// Lenient parse keeps the readable value so downstream checks still run.
	require.Equal(t, 45, cfg.Pac.TimeoutSeconds)
}

type fakeIdentity struct {
	record paccli.Record
	err    error
}

func (f fakeIdentity) WhoAmI(context.Context) (paccli.Record, error) {
	return f.record, f.err
}

func TestCheckAuth(t *testing.T) {
	tests := []struct {
		name       string
		client     fakeIdentity
		wantStatus Status
		wantInMsg  string
	}{
		{
			name:       "signed in",
			client:     fakeIdentity{record: paccli.Record{"FriendlyName": "Dev User"}},
			wantStatus: StatusOK,
			wantInMsg:  "Dev User",
		},
		{
			name:       "principal name fallback",
			client:     fakeIdentity{record: paccli.Record{"UserPrincipalName": "dev@contoso.com"}},
			wantStatus: StatusOK,
			wantInMsg:  "dev@contoso.com",
		},
		{
			name:       "not signed in",
			client:     fakeIdentity{},
			wantStatus: StatusWarn,
		},
		{
			name:       "runner error",
			client:     fakeIdentity{err: errors.New("spawn failed")},
			wantStatus: StatusWarn,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CheckAuth(context.Background(), tc.client)
			require.Equal(t, tc.wantStatus, result.Status)
			if tc.wantInMsg != "" {
				require.Contains(t, result.Message, tc.wantInMsg)
			}
		})
	}
}
