package domain

import "strings"

// Filter narrows a fetch to the given task and user IDs. Empty slices mean
// no narrowing.
type Filter struct {
	TaskIDs []string
	UserIDs []string
}

// IsEmpty reports whether f narrows nothing once blank IDs are ignored.
func (f Filter) IsEmpty() bool {
	return len(CleanIDs(f.TaskIDs)) == 0 && len(CleanIDs(f.UserIDs)) == 0
}

// CleanIDs trims ids and drops blanks.
func CleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// SplitIDs parses a comma separated id list as typed on a command line.
func SplitIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return CleanIDs(strings.Split(s, ","))
}
