// Package health implements the doctor checks: which display and click
// tools the current platform offers, whether the configuration parses, and
// whether the configured remote listener answers.
package health

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"wakedev/internal/config"
	"wakedev/internal/relay"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks and returns a report. configPath
// is the optional local config override passed on the command line.
func RunHealthChecks(ctx context.Context, configPath string) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	report.add(CheckDisplayTool())
	report.add(CheckClickTool())
	report.add(CheckTmux())

	cfg, configCheck := CheckConfig(configPath)
	report.add(configCheck)

	if cfg != nil && cfg.Remote.Configured() {
		report.add(CheckListener(ctx, cfg.Remote))
	}

	return report
}

// CheckDisplayTool checks for the platform's notification display path.
func CheckDisplayTool() CheckResult {
	name := "Display tool"
	switch runtime.GOOS {
	case "darwin":
		if toolAvailable("osascript") {
			return CheckResult{Name: name, Passed: true, Message: "osascript found"}
		}
		return CheckResult{Name: name, Passed: false, Message: "osascript not found in PATH"}
	case "linux":
		if !toolAvailable("notify-send") {
			return CheckResult{Name: name, Passed: false, Message: "notify-send not found in PATH"}
		}
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return CheckResult{Name: name, Passed: false, Message: "no display environment (DISPLAY/WAYLAND_DISPLAY unset)"}
		}
		return CheckResult{Name: name, Passed: true, Message: "notify-send found"}
	case "windows":
		return CheckResult{Name: name, Passed: true, Message: "toast notifications available"}
	default:
		return CheckResult{Name: name, Passed: false, Message: "no display path on " + runtime.GOOS}
	}
}

// CheckClickTool checks for the tool that observes notification clicks.
// Plain display works without it, so the message explains the degradation.
func CheckClickTool() CheckResult {
	name := "Click detection"
	switch runtime.GOOS {
	case "darwin":
		if toolAvailable("alerter") {
			return CheckResult{Name: name, Passed: true, Message: "alerter found"}
		}
		return CheckResult{Name: name, Passed: false, Message: "alerter not found in PATH (brew install alerter); --on-click and --wait-for-click degrade to plain display"}
	case "linux":
		if toolAvailable("notify-send") {
			return CheckResult{Name: name, Passed: true, Message: "notify-send action support assumed"}
		}
		return CheckResult{Name: name, Passed: false, Message: "notify-send not found in PATH"}
	default:
		return CheckResult{Name: name, Passed: false, Message: "click detection not supported on " + runtime.GOOS}
	}
}

// CheckTmux checks if tmux is available for focus restoration.
func CheckTmux() CheckResult {
	if toolAvailable("tmux") {
		return CheckResult{Name: "tmux", Passed: true, Message: "tmux found"}
	}
	return CheckResult{Name: "tmux", Passed: false, Message: "tmux not found in PATH; focus restoration skips pane selection"}
}

// CheckConfig loads and validates the configuration, returning it for the
// listener check when it parses.
func CheckConfig(configPath string) (*config.Configuration, CheckResult) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: fmt.Sprintf("configuration invalid: %v", err),
		}
	}
	return cfg, CheckResult{Name: "Configuration", Passed: true, Message: "configuration valid"}
}

// CheckListener pings the configured remote listener.
func CheckListener(ctx context.Context, remote config.RemoteConfig) CheckResult {
	name := "Remote listener"
	client := relay.NewClient(remote)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := client.Ping(pingCtx)
	if err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s unreachable: %v", client.BaseURL(), err),
		}
	}
	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%s answered in %s", client.BaseURL(), res.Latency.Round(time.Millisecond)),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
