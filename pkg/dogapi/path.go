package dogapi

import (
	"net/url"
	"strings"
)

// expandPath binds params into a path template for logging and error messages.
func expandPath(tmpl string, params map[string]string) string {
	if len(params) == 0 {
		return tmpl
	}
	out := tmpl
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", url.PathEscape(v))
	}
	return out
}
