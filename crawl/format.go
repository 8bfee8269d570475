package crawl

import (
	"fmt"
	"strings"
)

// TruncateURL shortens url to at most maxLen runes for display. The scheme
// is dropped first; if that is not enough the head is replaced by "…",
// since the end of a law page URL is what tells pages apart.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	for _, scheme := range []string{"https://", "http://"} {
		url = strings.TrimPrefix(url, scheme)
	}

	runes := []rune(url)
	if len(runes) <= maxLen {
		return url
	}
	return "…" + string(runes[len(runes)-maxLen+1:])
}

// FormatBytes formats n bytes with a binary unit.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	units := []string{"KB", "MB", "GB"}
	for i, unit := range units {
		v /= 1024
		if v < 1024 || i == len(units)-1 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
	}
	return ""
}

// FormatTokens formats an approximate token count.
func FormatTokens(tokens int) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("~%.1fM tokens", float64(tokens)/1_000_000)
	case tokens >= 1000:
		return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
	default:
		return fmt.Sprintf("~%d tokens", tokens)
	}
}

// Summary describes a fetch run in one line, for example
// "Saved 3 pages (12.4 KB, ~4k tokens), 1 failed".
func Summary(r *Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Saved %d pages (%s", r.Saved, FormatBytes(r.Bytes))
	if r.Tokens > 0 {
		fmt.Fprintf(&sb, ", %s", FormatTokens(r.Tokens))
	}
	sb.WriteString(")")
	if r.Failed > 0 {
		fmt.Fprintf(&sb, ", %d failed", r.Failed)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&sb, ", %d duplicates skipped", r.Skipped)
	}
	return sb.String()
}
