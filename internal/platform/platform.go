// Package platform detects the properties reported by the version command:
// operating system, architecture and, on Linux, the distribution.
package platform

import (
	"bufio"
	"os"
	"runtime"
	"strings"

	"git.home.luguber.info/inful/cratebuilder/internal/util/sets"
)

const osReleasePath = "/etc/os-release"

// Distributions the tool recognizes; anything else reports DISTRO_UNKNOWN.
var knownDistros = sets.New[string](
	"ubuntu",
	"debian",
	"fedora",
	"rhel",
	"centos",
	"arch",
	"alpine",
	"opensuse",
	"suse",
)

// Properties are the detected platform facts, already rendered in their
// reporting form (OS_LINUX, ARCH_X86_64, DISTRO_UBUNTU, ...).
type Properties struct {
	OS     string
	Arch   string
	Distro string
}

// Detect gathers the current platform's properties. Distribution detection
// can be disabled through settings; detection failures degrade to
// DISTRO_UNKNOWN and are never fatal.
func Detect(disableDistroDetection bool) Properties {
	return Properties{
		OS:     osProperty(),
		Arch:   archProperty(),
		Distro: distroProperty(disableDistroDetection),
	}
}

// List renders the properties in reporting order.
func (p Properties) List() []string {
	return []string{p.OS, p.Arch, p.Distro}
}

func osProperty() string {
	switch runtime.GOOS {
	case "linux":
		return "OS_LINUX"
	case "darwin":
		return "OS_MACOS"
	case "windows":
		return "OS_WINDOWS"
	default:
		return "OS_" + strings.ToUpper(runtime.GOOS)
	}
}

func archProperty() string {
	switch runtime.GOARCH {
	case "amd64":
		return "ARCH_X86_64"
	case "arm64":
		return "ARCH_AARCH64"
	case "386":
		return "ARCH_I686"
	default:
		return "ARCH_" + strings.ToUpper(runtime.GOARCH)
	}
}

func distroProperty(disabled bool) string {
	if disabled || runtime.GOOS != "linux" {
		return "DISTRO_UNKNOWN"
	}
	return distroFromOSRelease(osReleasePath)
}

// distroFromOSRelease extracts the distribution from an os-release file.
func distroFromOSRelease(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "DISTRO_UNKNOWN"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		id, ok := strings.CutPrefix(line, "ID=")
		if !ok {
			continue
		}
		id = strings.Trim(id, `"'`)
		id = strings.ToLower(strings.TrimSpace(id))
		if knownDistros.Has(id) {
			return "DISTRO_" + strings.ToUpper(id)
		}
		return "DISTRO_UNKNOWN"
	}
	return "DISTRO_UNKNOWN"
}
