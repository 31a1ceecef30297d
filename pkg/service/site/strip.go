package site

import (
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?s)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?s)<style[^>]*>.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s{2,}`)
)

// isolateBody returns the substring between the body start and end
// markers. Missing markers fall back to the whole document rather than
// failing: truncated pages still carry usable content.
func isolateBody(html string) string {
	start := strings.Index(html, "<body")
	if start < 0 {
		return html
	}
	end := strings.Index(html[start:], "</body>")
	if end < 0 {
		return html
	}
	return html[start : start+end+len("</body>")]
}

// unescapeEntities decodes the small fixed entity set that survives tag
// stripping in practice
func unescapeEntities(s string) string {
	r := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
	return r.Replace(s)
}

// stripMarkup reduces an HTML document to near-text: body isolation,
// script and style removal, tag removal, entity decoding, whitespace
// collapse. Boilerplate that survives this pass is the extractor's job.
func stripMarkup(html string) string {
	body := isolateBody(html)
	body = scriptRe.ReplaceAllString(body, "")
	body = styleRe.ReplaceAllString(body, "")
	body = tagRe.ReplaceAllString(body, " ")
	body = unescapeEntities(body)
	body = spaceRe.ReplaceAllString(body, " ")
	return strings.TrimSpace(body)
}
