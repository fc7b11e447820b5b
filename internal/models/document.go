package models

import "time"

// docString returns the first non-empty string value among the given keys.
func docString(doc map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := doc[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// docTime parses the first parseable timestamp among the given keys, falling
// back to the current time for missing or malformed values.
func docTime(doc map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
				return parsed
			}
		case time.Time:
			return t
		}
	}
	return time.Now()
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
