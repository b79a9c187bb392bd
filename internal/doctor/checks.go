// Package doctor runs environment health checks for the doctor command.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/powerdesk/powerdesk/internal/config"
	"github.com/powerdesk/powerdesk/internal/messages"
	"github.com/powerdesk/powerdesk/internal/paccli"
)

// Status classifies a check outcome.
type Status string

const (
	// StatusOK means the check passed.
	StatusOK Status = "ok"
	// StatusWarn means the check found something worth attention.
	StatusWarn Status = "warn"
	// StatusFail means the check found a blocking problem.
	StatusFail Status = "fail"
)

// Result describes one check outcome.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// probeFunc is a test seam for the version probe.
var probeFunc = func(ctx context.Context, executable string) (paccli.Result, error) {
	return paccli.ExecRunner{Executable: executable}.Run(ctx, []string{"--version"}, paccli.ProbeTimeout)
}

// CheckTool verifies the pac executable starts and answers the version probe.
func CheckTool(ctx context.Context, executable string) Result {
	result, err := probeFunc(ctx, executable)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameTool,
			Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, err),
			Recommendation: messages.DoctorToolRecommend,
		}
	}
	if !result.Success {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameTool,
			Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, result.Stderr),
			Recommendation: messages.DoctorToolRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameTool,
		Message:   fmt.Sprintf(messages.DoctorToolOKFmt, strings.TrimSpace(result.Stdout)),
	}
}

// CheckSettings validates the settings file at path. A missing file is a
// WARN (built-in defaults apply); an unreadable or invalid file is a FAIL.
// The returned config is always usable: defaults when missing, the lenient
// parse when invalid, so downstream checks still run.
func CheckSettings(path string) (Result, config.Config) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameSettings,
			Message:   messages.DoctorSettingsDefault,
		}, config.Default()
	}

	cfg, err := config.Parse(data, path)
	if err != nil {
		fallback := config.Default()
		if lenient, lenientErr := config.ParseLenient(data, path); lenientErr == nil {
			fallback = *lenient
		}
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameSettings,
			Message:        fmt.Sprintf(messages.DoctorSettingsBadFmt, err),
			Recommendation: messages.DoctorSettingsRecommend,
		}, fallback
	}

	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameSettings,
		Message:   fmt.Sprintf(messages.DoctorSettingsOKFmt, path),
	}, *cfg
}

// identityClient is the slice of the pac client CheckAuth consumes.
type identityClient interface {
	WhoAmI(ctx context.Context) (paccli.Record, error)
}

// CheckAuth reports whether pac has a working identity.
func CheckAuth(ctx context.Context, client identityClient) Result {
	record, err := client.WhoAmI(ctx)
	if err != nil || record == nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameAuth,
			Message:        messages.DoctorAuthMissing,
			Recommendation: messages.DoctorAuthRecommend,
		}
	}

	identity, _ := record["FriendlyName"].(string)
	if identity == "" {
		identity, _ = record["UserPrincipalName"].(string)
	}
	if identity == "" {
		identity, _ = record["UserId"].(string)
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameAuth,
		Message:   fmt.Sprintf(messages.DoctorAuthOKFmt, identity),
	}
}
