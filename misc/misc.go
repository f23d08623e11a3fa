// Package misc holds build time information set by the linker.
package misc

// Values are set at link time with -ldflags.
var (
	appName = "wpc"
	version = "0.0.0-dev"
	gitHash = "unknown"
)

// GetAppName returns base name used for executables, log files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit hash of the build.
func GetGitHash() string {
	return gitHash
}
