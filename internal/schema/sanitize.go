package schema

import (
	"html"
	"math"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// maxPasses bounds the sanitize/unescape loop. Each pass peels one level of
// entity encoding.
const maxPasses = 8

const wordsPerMinute = 200

var (
	textPolicy     = bluemonday.StrictPolicy()
	markdownPolicy = bluemonday.UGCPolicy()

	slugFilter     = regexp.MustCompile(`[^a-z0-9-]`)
	emailFilter    = regexp.MustCompile(`[^a-z0-9._%+@-]`)
	fileNameFilter = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	underscores    = regexp.MustCompile(`_{2,}`)
)

func settle(s string, p *bluemonday.Policy) string {
	for range maxPasses {
		next := strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
		if next == s {
			return s
		}
		s = next
	}
	// Still encoded after maxPasses: keep the escaped output of one more
	// sanitize rather than unescaping into markup.
	return strings.TrimSpace(p.Sanitize(s))
}

// Text strips every tag, leaving plain trimmed text.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return settle(s, textPolicy)
}

// Markdown keeps harmless inline HTML but removes scripts, styles, frames,
// embedded objects, forms and event handler attributes.
func Markdown(s string) string {
	if s == "" {
		return ""
	}
	return settle(s, markdownPolicy)
}

// ID lowercases a record id so references between collections compare equal.
func ID(s string) string {
	return strings.ToLower(Text(s))
}

func Slug(s string) string {
	return slugFilter.ReplaceAllString(strings.ToLower(Text(s)), "")
}

func Email(s string) string {
	return emailFilter.ReplaceAllString(strings.ToLower(Text(s)), "")
}

// URL returns s re-encoded when it is an absolute http, https or mailto URL,
// and "" otherwise.
func URL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !isAllowedURL(s) {
		return ""
	}
	u, _ := url.Parse(s)
	return u.String()
}

// ImageRef accepts a local upload path or an http(s) URL.
func ImageRef(s string) string {
	s = strings.TrimSpace(s)
	if local, ok := LocalUploadPath(s); ok {
		return local
	}
	u := URL(s)
	if strings.HasPrefix(u, "mailto:") {
		return ""
	}
	return u
}

// LocalUploadPath reports whether ref names a file under /uploads/ and
// returns its cleaned form.
func LocalUploadPath(ref string) (string, bool) {
	if !strings.HasPrefix(ref, "/uploads/") {
		return "", false
	}
	clean := path.Clean(ref)
	if !strings.HasPrefix(clean, "/uploads/") || strings.Contains(ref, "..") {
		return "", false
	}
	return clean, true
}

func FileName(name string) string {
	name = fileNameFilter.ReplaceAllString(name, "_")
	name = underscores.ReplaceAllString(name, "_")
	return strings.ToLower(name)
}

func ReadTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// Timestamp normalizes to UTC at millisecond precision, the resolution the
// collection files keep.
func Timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Millisecond)
}
