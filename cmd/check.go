package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/icon"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/resolver"
	"github.com/mosaic-cli/mosaic/style"
	"github.com/spf13/viper"
)

type dependency struct {
	name string
	path string
	// required dependencies stop the program when missing, others only warn
	required bool
}

func dependencies() []dependency {
	deps := []dependency{
		{name: "mpv", path: viper.GetString(key.PlayerPath), required: true},
	}

	switch backend := viper.GetString(key.ResolverBackend); backend {
	case resolver.BackendAuto, resolver.BackendStreamlink:
		deps = append(deps, dependency{
			name:     "streamlink",
			path:     viper.GetString(key.ResolverStreamlinkPath),
			required: backend == resolver.BackendStreamlink,
		})
	}

	return deps
}

// CheckDependencies makes sure the external programs the session relies on are installed.
func CheckDependencies() {
	for _, dep := range dependencies() {
		path := dep.path
		if path == "" {
			path = dep.name
		}

		if _, err := exec.LookPath(path); err == nil {
			continue
		}

		if dep.required {
			printMissingDependencyError(dep.name)
			os.Exit(1)
		}

		log.Warnf("%s not found, only direct and local streams will play", dep.name)
	}
}

func installCommand(dep string) string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		if dep == "streamlink" {
			return "pipx install streamlink"
		}
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	}
	return ""
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd := installCommand(dep); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
