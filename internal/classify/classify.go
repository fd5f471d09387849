// Package classify maps filenames to destination bucket names.
//
// A bucket is the extension-named subfolder a file is sorted into. The
// mapping is total: every filename, including hidden and extensionless
// files, resolves to exactly one bucket.
package classify

import "strings"

// NoExtension is the bucket name used for files without an extension.
// Files literally named *.no_extension share this bucket, which keeps
// classification total instead of erroring on the overlap.
const NoExtension = "no_extension"

// Bucket returns the bucket name for the given filename.
//
// The extension is the substring after the last dot, lower-cased, so
// "photo.JPG" and "photo.jpg" land in the same bucket. A leading-dot
// filename with no further dot (".bashrc") is treated as extensionless.
func Bucket(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 || idx == len(filename)-1 {
		// No dot, hidden file with no further dot, or trailing dot.
		return NoExtension
	}
	return strings.ToLower(filename[idx+1:])
}
