package version

import "fmt"

// Version is the release version embedded in the binary.
// Override at build time with:
// go build -ldflags "-X github.com/oukeidos/qrscan/internal/version.Version=1.0.0"
var Version = "0.1.0"

// Commit is the git commit hash, set with -X .../version.Commit=<sha>.
var Commit = "unknown"

// BuildDate is the RFC3339 build timestamp, set with -X .../version.BuildDate=<ts>.
var BuildDate = "unknown"

// Name is the program name shown in version output and window titles.
const Name = "qrscan"

// Short returns "qrscan <version>".
func Short() string {
	return fmt.Sprintf("%s %s", Name, Version)
}

// Info returns a multi-line version string for CLI output.
func Info() string {
	return fmt.Sprintf("%s\ncommit: %s\nbuild: %s", Short(), Commit, BuildDate)
}
