package util

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client-supplied filename to a name that is safe
// to store in, and serve from, the upload directory. Path separators become
// underscores, anything outside [A-Za-z0-9_.-] is removed, and leading or
// trailing dots and underscores are stripped. "../../etc/passwd" comes out
// as "etc_passwd". An empty result means the name is unusable.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// IsSafeStoredFilename reports whether a requested filename is exactly a name
// the sanitizer could have produced, which is the precondition for opening it
// inside the upload directory.
func IsSafeStoredFilename(name string) bool {
	return name != "" && SanitizeFilename(name) == name
}
