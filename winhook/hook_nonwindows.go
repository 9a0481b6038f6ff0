//go:build !windows

package winhook

// Install is a no-op outside Windows. Window identity there comes from the
// platform's own mechanisms, e.g. the StartupWMClass of the installed
// .desktop entry.
func Install(appID string) error {
	return nil
}

// SetProcessAppID is a no-op outside Windows.
func SetProcessAppID(appID string) error {
	return nil
}
