package version

import (
	"fmt"
	"runtime"
)

var (
	Version   string = "0.1.0" // updated by hand at each release; follows SemVer
	GitCommit string           // set by the build system with -ldflags
	BuildDate string           // set by the build system with -ldflags
)

// Info is the build of the binary, as printed by `benor version`.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("version=%s git=%s build=%s go=%s", i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

func ToDetailVersion() string {
	return GetInfo().String()
}

// UserAgent is sent by the nodes in their http requests.
func UserAgent(nodeName string) string {
	return fmt.Sprintf("benor/%s (%s)", Version, nodeName)
}
