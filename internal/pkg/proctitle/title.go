package proctitle

import "strings"

// Prefix is prepended to every service title.
const Prefix = "portfolio-"

// ForService returns the process title for a portfolio service,
// e.g. "portfolio-backend".
func ForService(service string) string {
	service = strings.TrimSpace(service)
	if service == "" {
		return strings.TrimSuffix(Prefix, "-")
	}
	return Prefix + service
}

// Comm shortens title to the 15 bytes Linux keeps, preferring its tail.
func Comm(title string) string {
	const limit = 15
	if len(title) <= limit {
		return title
	}
	if i := strings.Index(title, "-"); i >= 0 && len(title)-i-1 <= limit {
		tail := title[i+1:]
		if tail != "" {
			return tail
		}
	}
	return title[:limit]
}
