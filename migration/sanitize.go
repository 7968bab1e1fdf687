package migration

import (
	"fmt"
	"strings"
)

// maxFolderNameLength is Liferay's cap on document folder names.
const maxFolderNameLength = 255

// Names the portal's storage backend refuses as folder names.
var reservedFolderNames = map[string]bool{
	"null": true, "con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

const invalidFolderChars = `<>:"/\|?*`

// SanitizeFolderName makes a post or category title safe to use as a Liferay
// document folder name: filesystem-hostile characters are stripped, reserved
// device names get a _safe suffix, and the result is capped at 255 characters.
// A blank name is an error; callers decide the fallback.
func SanitizeFolderName(title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("migration: folder name cannot be blank")
	}

	for _, char := range invalidFolderChars {
		title = strings.ReplaceAll(title, string(char), "")
	}

	title = strings.TrimSuffix(title, "..")
	title = strings.ReplaceAll(title, "../", "")
	title = strings.ReplaceAll(title, "/...", "")

	if reservedFolderNames[strings.ToLower(title)] {
		title += "_safe"
	}

	if runes := []rune(title); len(runes) > maxFolderNameLength {
		title = string(runes[:maxFolderNameLength])
	}

	return title, nil
}

// UniqueName returns base, or base with the first numeric suffix that avoids
// the existing set: "Foo" against {"Foo", "Foo_1"} yields "Foo_2".
func UniqueName(base string, existing map[string]bool) string {
	name := base
	for counter := 1; existing[name]; counter++ {
		name = fmt.Sprintf("%s_%d", base, counter)
	}
	return name
}
