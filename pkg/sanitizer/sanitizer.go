package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicy() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text.
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// Strip removes all HTML from s and unescapes entities, returning plain text.
// Use for untrusted string inputs that must never carry markup.
func Strip(s string) string {
	initPolicy()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// StripArgs returns a copy of args with every top-level string value passed
// through Strip. Non-string values and nested structures are left untouched;
// handlers that accept rich values are responsible for their own escaping.
func StripArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}

	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok {
			out[k] = Strip(s)
			continue
		}
		out[k] = v
	}
	return out
}
