// Package appid derives the identifier tying an application's windows to its
// shortcut, used as the AppUserModelID on Windows and as the launcher/process
// name on Linux.
package appid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// ForModule returns the application identifier for a module installed under
// the given environment prefix. envName is the short environment name, empty
// when there is none worth mentioning.
func ForModule(orgName, moduleName, prefix, envName string) string {
	if runtime.GOOS == "windows" {
		return WindowsID(orgName, moduleName, prefix)
	}
	return LinuxID(moduleName, envName)
}

// WindowsID returns the AppUserModelID form:
//
//	<OrgName>.<ModuleName>.Python-<hexdigits>
//
// OrgName is omitted if empty. The last segment hashes the environment prefix
// so the id is unique to the Python environment. Name segments are
// CamelCased, with periods replaced by hyphens and spaces and underscores
// removed.
func WindowsID(orgName, moduleName, prefix string) string {
	// Normalise the case before hashing, interpreter paths on Windows show up
	// with inconsistent casing.
	normalised := strings.ToLower(filepath.Clean(prefix))
	prefixHash := sha256.Sum256([]byte(normalised))
	hexdigits := hex.EncodeToString(prefixHash[:])[:16]

	var parts []string
	for _, part := range []string{orgName, moduleName} {
		if part == "" {
			continue
		}
		parts = append(parts, camelCase(part))
	}
	parts = append(parts, fmt.Sprintf("Python-%s", hexdigits))
	return strings.Join(parts, ".")
}

// LinuxID returns the identifier used to name the .desktop file and the
// launcher script. It doubles as the process name (and therefore WM_CLASS in
// most toolkits), so it's kept user-friendly: the plain module name, with the
// environment name appended when in a named environment.
func LinuxID(moduleName, envName string) string {
	if envName == "" {
		return moduleName
	}
	return fmt.Sprintf("%s-%s", moduleName, envName)
}

func camelCase(s string) string {
	s = titleCase(s)
	replacer := strings.NewReplacer(" ", "", "_", "", ".", "-")
	return replacer.Replace(s)
}

// titleCase uppercases the first letter of every letter run and lowercases
// the rest, so underscores and other separators start new words.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
