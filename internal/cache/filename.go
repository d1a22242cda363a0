package cache

import "strings"

// PathToCacheFileName flattens a bucket/object path into a single cache
// file name.
func PathToCacheFileName(path string) string {
	replacer := strings.NewReplacer("&", "", "=", "", ".", "", "/", "_", "?", "_")
	return replacer.Replace(path)
}
