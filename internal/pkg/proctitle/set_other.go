//go:build !linux

package proctitle

import (
	"os"
	"strings"
)

// Set rewrites os.Args[0] to title. Platforms other than Linux have no
// kernel comm name to change, so ps keeps showing the binary name and an
// empty title is ignored rather than reported.
func Set(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	if len(os.Args) > 0 {
		os.Args[0] = title
	}
	return nil
}
