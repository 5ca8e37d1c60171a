package analyzer

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PathChecker answers existence questions for probe paths.
type PathChecker interface {
	Exists(ctx context.Context, path string) bool
}

// Evidence is the raw signal data one analysis scores against.
// It is owned by a single run and discarded after scoring.
type Evidence struct {
	HeaderText  string   // "Name: value" pairs, names sorted
	HTML        string   // raw decoded body
	Resources   []string // script src and link href values
	MetaText    string   // every <meta> element, serialized
	Generator   string   // content of <meta name="generator">
	ScriptText  string   // inline script bodies
	ClassTokens string   // distinct class tokens, first-seen order

	paths PathChecker
}

// PathExists probes path lazily; without a checker every path is absent.
func (e *Evidence) PathExists(ctx context.Context, path string) bool {
	if e.paths == nil {
		return false
	}
	return e.paths.Exists(ctx, path)
}

// Collect gathers evidence from page. It does no scoring. Probe results
// come from paths on demand.
func Collect(page *Page, paths PathChecker) *Evidence {
	ev := &Evidence{
		HeaderText: HeaderText(page.Header),
		HTML:       page.Body,
		paths:      paths,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		// Body-level matching still works without a DOM.
		return ev
	}

	ev.Resources = collectResources(doc)
	ev.MetaText, ev.Generator = collectMeta(doc)
	ev.ScriptText = collectInlineScripts(doc)
	ev.ClassTokens = collectClassTokens(doc)

	return ev
}

// HeaderText joins headers into one searchable string. Names are sorted so
// the text does not depend on map order; repeated values are comma-joined.
func HeaderText(header http.Header) string {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+": "+strings.Join(header[name], ", "))
	}
	return strings.Join(pairs, " ")
}

// FlattenHeaders converts header to a single-valued map for output.
func FlattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func collectResources(doc *goquery.Document) []string {
	var resources []string
	doc.Find("script[src], link[href]").Each(func(i int, s *goquery.Selection) {
		attr := "src"
		if goquery.NodeName(s) == "link" {
			attr = "href"
		}
		if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" {
			resources = append(resources, v)
		}
	})
	return resources
}

// collectMeta serializes every <meta> element and extracts the first
// generator content.
func collectMeta(doc *goquery.Document) (string, string) {
	var tags []string
	var generator string

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		if html, err := goquery.OuterHtml(s); err == nil {
			tags = append(tags, html)
		}
		if generator == "" && strings.EqualFold(s.AttrOr("name", ""), "generator") {
			generator = strings.TrimSpace(s.AttrOr("content", ""))
		}
	})

	return strings.Join(tags, "\n"), generator
}

func collectInlineScripts(doc *goquery.Document) string {
	var scripts []string
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			scripts = append(scripts, text)
		}
	})
	return strings.Join(scripts, " ")
}

func collectClassTokens(doc *goquery.Document) string {
	seen := make(map[string]struct{})
	var tokens []string

	doc.Find("[class]").Each(func(i int, s *goquery.Selection) {
		for _, token := range strings.Fields(s.AttrOr("class", "")) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	})

	return strings.Join(tokens, " ")
}
