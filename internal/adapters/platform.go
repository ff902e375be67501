package adapters

import (
	"bufio"
	"os"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mist/internal/ports"
	"mist/internal/types"
)

const defaultOSReleasePath = "/etc/os-release"

// debianArchitectures maps Go architecture names to dpkg architecture names.
var debianArchitectures = map[string]string{
	"amd64":    "amd64",
	"arm64":    "arm64",
	"arm":      "armhf",
	"386":      "i386",
	"ppc64le":  "ppc64el",
	"s390x":    "s390x",
	"riscv64":  "riscv64",
	"mips64le": "mips64el",
}

// OSReleaseAdapter reports the running distribution codename and dpkg
// architecture. Non-empty Distro or Arch override detection.
type OSReleaseAdapter struct {
	Path   string
	Distro string
	Arch   string
	GOARCH string
}

func NewOSReleaseAdapter(distro string, arch string) OSReleaseAdapter {
	return OSReleaseAdapter{
		Path:   defaultOSReleasePath,
		Distro: strings.TrimSpace(distro),
		Arch:   strings.TrimSpace(arch),
		GOARCH: runtime.GOARCH,
	}
}

func (a OSReleaseAdapter) Current() (types.DistroArch, error) {
	platform := types.DistroArch{Distro: a.Distro, Arch: a.Arch}
	if platform.Arch == "" {
		arch, ok := debianArchitectures[a.GOARCH]
		if !ok {
			arch = a.GOARCH
		}
		platform.Arch = arch
	}
	if platform.Distro == "" {
		codename, err := readCodename(a.Path)
		if err != nil {
			return types.DistroArch{}, err
		}
		platform.Distro = codename
	}
	return platform, nil
}

func readCodename(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("cannot detect distribution; set distro explicitly").
			WithCause(err)
	}
	defer file.Close()
	values := map[string]string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		values[key] = strings.Trim(value, `"'`)
	}
	if err := scanner.Err(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read os-release").
			WithCause(err)
	}
	for _, key := range []string{"VERSION_CODENAME", "UBUNTU_CODENAME"} {
		if codename := strings.TrimSpace(values[key]); codename != "" {
			return codename, nil
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("os-release has no VERSION_CODENAME; set distro explicitly")
}

// StaticPlatformAdapter always reports the same platform.
type StaticPlatformAdapter struct {
	Platform types.DistroArch
}

func (a StaticPlatformAdapter) Current() (types.DistroArch, error) {
	return a.Platform, nil
}

var (
	_ ports.PlatformPort = OSReleaseAdapter{}
	_ ports.PlatformPort = StaticPlatformAdapter{}
)
