package model

import "strings"

// CountDiffLines classifies the lines of an unified diff.
// File headers (+++ and ---) are not counted.
func CountDiffLines(diff string) (added int, removed int) {
	if diff == "" {
		return 0, 0
	}

	diff = strings.ReplaceAll(diff, "\r", "")

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			added++
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			removed++
		}
	}

	return added, removed
}
