package parser

import "strings"

// Scrape providers have returned the same logical field under several key
// names over time. These helpers resolve an ordered list of alias keys
// against a decoded JSON object; a dot in a key descends into a nested
// object ("stats.playCount").

func lookupPath(m map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var cur interface{} = m
	for _, p := range parts {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// firstString returns the first alias key present with a non-empty string value.
func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := lookupPath(m, k); ok {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// firstCount returns the first alias key present with a numeric (or numeric
// string) value, reporting whether any was found.
func firstCount(m map[string]interface{}, keys ...string) (int64, bool) {
	for _, k := range keys {
		v, ok := lookupPath(m, k)
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n >= 0 {
				return int64(n), true
			}
		case int64:
			if n >= 0 {
				return n, true
			}
		case string:
			if n != "" {
				return ParseCount(n), true
			}
		}
	}
	return 0, false
}
