package config

import (
	"fmt"
	"regexp"
	"strconv"
)

var yearRangePattern = regexp.MustCompile(`^(\d{4})(?:-(\d{4}))?$`)

// ParseYearRange parses a year ("2019") or inclusive range ("2008-2010").
// Malformed input is rejected here, before any network activity begins.
func ParseYearRange(s string) (start, end int, err error) {
	match := yearRangePattern.FindStringSubmatch(s)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid year range %q; expected e.g. 2019 or 2008-2010", s)
	}
	start, err = strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q: %w", match[1], err)
	}
	end = start
	if match[2] != "" {
		end, err = strconv.Atoi(match[2])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q: %w", match[2], err)
		}
	}
	if end < start {
		return 0, 0, fmt.Errorf("invalid year range %q: end precedes start", s)
	}
	return start, end, nil
}
