// Package service implements the business logic layer of the application.
package service

import "time"

// spaceStamp renders a time as "YYYY-MM-DD HH:MM:SS UTC", the format used by
// the create-post and like responses.
func spaceStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

// isoStamp renders a time as ISO 8601 truncated to seconds with a literal Z
// suffix, the format used by the post-detail and feed responses.
func isoStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + "Z"
}
