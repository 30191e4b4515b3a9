package urldetector

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// MaxLinks caps how many video links a single page contributes
const MaxLinks = 3

// Extractor finds candidate video links in raw page text.
// Implementations return at most MaxLinks unique links in first-seen order
// and never fail; no match yields an empty slice.
type Extractor interface {
	ExtractLinks(text string) []string
}

// hrefPattern matches href="..." attribute values, including the JSON-escaped
// form (href=\"https:\/\/...\") that Notion embeds in its page payload.
// Links in markup of any other shape (single quotes, unquoted, relative) are
// not seen. That is a known limitation of this strategy.
var hrefPattern = regexp.MustCompile(`href=\\?"(https?:(?:\\?/){2}[^"]+?)\\?"`)

// HrefExtractor scans text with a regular expression instead of parsing HTML
type HrefExtractor struct {
	limit int
}

// NewHrefExtractor creates the pattern-based extractor
func NewHrefExtractor() *HrefExtractor {
	return &HrefExtractor{limit: MaxLinks}
}

// ExtractLinks returns up to MaxLinks unique YouTube links
func (e *HrefExtractor) ExtractLinks(text string) []string {
	matches := hrefPattern.FindAllStringSubmatch(text, -1)
	hrefs := make([]string, 0, len(matches))
	for _, m := range matches {
		hrefs = append(hrefs, m[1])
	}
	return collect(hrefs, e.limit)
}

// HTMLExtractor walks <a href> attributes with the x/net/html tokenizer
type HTMLExtractor struct {
	limit int
}

// NewHTMLExtractor creates the tokenizer-based extractor
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{limit: MaxLinks}
}

// ExtractLinks returns up to MaxLinks unique YouTube links
func (e *HTMLExtractor) ExtractLinks(text string) []string {
	var hrefs []string
	z := html.NewTokenizer(strings.NewReader(text))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or malformed input, keep whatever was found
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		if string(name) != "a" || !hasAttr {
			continue
		}
		for {
			key, val, more := z.TagAttr()
			if string(key) == "href" {
				href := string(val)
				if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
					hrefs = append(hrefs, href)
				}
			}
			if !more {
				break
			}
		}
	}

	return collect(hrefs, e.limit)
}

// New returns the extractor registered under name, defaulting to the href pattern
func New(name string) Extractor {
	if name == "html" {
		return NewHTMLExtractor()
	}
	return NewHrefExtractor()
}

// collect unescapes, filters to video links, removes duplicates keeping the
// first occurrence, and truncates to limit
func collect(hrefs []string, limit int) []string {
	links := make([]string, 0, limit)
	seen := make(map[string]bool)

	for _, href := range hrefs {
		link := unescapeSlashes(href)
		if !IsVideoLink(link) || seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
		if len(links) == limit {
			break
		}
	}

	return links
}

// IsVideoLink reports whether link points at a YouTube watch page or short link
func IsVideoLink(link string) bool {
	return strings.Contains(link, "youtube.com/watch") || strings.Contains(link, "youtu.be/")
}

func unescapeSlashes(s string) string {
	return strings.ReplaceAll(s, `\/`, "/")
}
