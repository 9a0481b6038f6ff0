package version

// will be replaced with the release version when using goreleaser
var version = "development"

// DeskappVersion returns the deskapp version
func DeskappVersion() string {
	return version
}
