// Package privacy removes user-identifying data from messages before they are
// logged or sent to telemetry.
package privacy

import "regexp"

// Legacy file paths and user names end up in error messages. Query strings
// and MySQL DSN credentials may too.
var (
	urlQueryRegex  = regexp.MustCompile(`(https?://[^?\s]+)\?\S*`)
	homeDirRegex   = regexp.MustCompile(`(/home/|/Users/|(?i:[a-z]:\\users\\))[^/\\\s]+`)
	credentialsDSN = regexp.MustCompile(`[^\s:@/]+:[^\s@/]+@tcp\(`)
)

// ScrubMessage redacts URL query strings, home directory user names and
// DSN credentials in message.
func ScrubMessage(message string) string {
	scrubbed := urlQueryRegex.ReplaceAllString(message, "$1?[REDACTED]")
	scrubbed = homeDirRegex.ReplaceAllString(scrubbed, "${1}[USER]")
	scrubbed = credentialsDSN.ReplaceAllString(scrubbed, "[CREDENTIALS]@tcp(")
	return scrubbed
}
