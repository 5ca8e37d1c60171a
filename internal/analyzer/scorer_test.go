package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepakuplers/website-tech-detector/internal/signature"
)

func htmlSignature(name string, patterns ...string) *signature.Signature {
	sig := &signature.Signature{Name: name}
	for _, p := range patterns {
		sig.HTML = append(sig.HTML, signature.MustCompile(p, false))
	}
	return sig
}

func TestScoreThresholdBoundary(t *testing.T) {
	ev := &Evidence{HTML: "alpha beta"}

	one, _ := Score(context.Background(), htmlSignature("One", "alpha"), ev)
	two, _ := Score(context.Background(), htmlSignature("Two", "alpha", "beta"), ev)

	assert.Equal(t, 15, one)
	assert.Equal(t, 30, two)

	detected := Detected([]Detection{
		{Name: "One", Score: one},
		{Name: "Two", Score: two},
		{Name: "Edge", Score: DefaultThreshold - 1},
	}, DefaultThreshold)
	require.Len(t, detected, 1)
	// Two unrelated weak hits are enough on their own.
	assert.Equal(t, "Two", detected[0].Name)
}

func TestScoreTruncatesMethodsButKeepsPoints(t *testing.T) {
	sig := htmlSignature("Many", "a", "b", "c", "d", "e", "f", "g")
	ev := &Evidence{HTML: "abcdefg"}

	points, methods := Score(context.Background(), sig, ev)

	assert.Equal(t, 7*15, points)
	assert.Equal(t, []string{
		"HTML pattern: a",
		"HTML pattern: b",
		"HTML pattern: c",
		"HTML pattern: d",
		"HTML pattern: e",
	}, methods)
}

func TestScoreIsMonotonic(t *testing.T) {
	sig := htmlSignature("Mono", "alpha", "beta", "gamma")

	prev := 0
	for _, body := range []string{"", "alpha", "alpha beta", "alpha beta gamma"} {
		points, _ := Score(context.Background(), sig, &Evidence{HTML: body})
		assert.GreaterOrEqual(t, points, prev, body)
		prev = points
	}
}

func TestScoreGroupOrderAndDescriptions(t *testing.T) {
	sig := &signature.Signature{
		Name:       "Everything",
		AdminPaths: []string{"/admin/"},
		APIPaths:   []string{"/api/"},
		HTML:       []*signature.Matcher{signature.MustCompile(`marker`, false)},
		Meta:       []*signature.Matcher{signature.MustCompile(`og:site_name`, false)},
		Header:     []*signature.Matcher{signature.MustCompile(`X-Thing`, false)},
		JS:         []*signature.Matcher{signature.MustCompile(`initThing\(`, true)},
		CSS:        []*signature.Matcher{signature.MustCompile(`thing-`, true)},
	}
	stub := newStubFetcher("", nil)
	stub.outcomes["/admin/"] = ProbeFound
	stub.outcomes["/api/"] = ProbeFound

	ev := &Evidence{
		HeaderText:  "X-Thing: 1",
		HTML:        "<div>marker</div>",
		MetaText:    `<meta property="og:site_name" content="Thing"/>`,
		ScriptText:  "initThing()",
		ClassTokens: "thing-main",
		paths:       newPathProber(stub, "https://example.com", 0),
	}

	points, methods := Score(context.Background(), sig, ev)

	assert.Equal(t, 30+25+15+20+20+10+10, points)
	assert.Equal(t, []string{
		"Admin path: /admin/",
		"API endpoint: /api/",
		"HTML pattern: marker",
		"Meta tag: og:site_name",
		"HTTP header: X-Thing",
	}, methods)
}

func TestScoreMetaGeneratorIgnoresAttributeOrder(t *testing.T) {
	sig, ok := signature.Default().Lookup("WordPress")
	require.True(t, ok)

	ev := Collect(&Page{
		Header: http.Header{},
		Body:   `<html><head><meta content="WordPress 6.4.2" name="generator"></head></html>`,
	}, nil)

	points, methods := Score(context.Background(), sig, ev)

	assert.Equal(t, 20, points)
	assert.Equal(t, []string{"Meta generator: WordPress 6.4.2"}, methods)
}

func TestScoreHTMLMatchesResourcesOnce(t *testing.T) {
	sig := htmlSignature("CDN", `cdn\.example\.net`)
	ev := &Evidence{
		HTML:      "<html></html>",
		Resources: []string{"https://cdn.example.net/a.js", "https://cdn.example.net/b.css"},
	}

	points, methods := Score(context.Background(), sig, ev)

	assert.Equal(t, 15, points)
	assert.Equal(t, []string{`HTML pattern: cdn\.example\.net`}, methods)
}

func TestScoreJSAndCSSAreCaseSensitive(t *testing.T) {
	sig, ok := signature.Default().Lookup("jQuery")
	require.True(t, ok)

	points, _ := Score(context.Background(), sig, &Evidence{ScriptText: "JQUERY(function(){})"})
	assert.Zero(t, points)

	points, _ = Score(context.Background(), sig, &Evidence{ScriptText: "jQuery(function(){})"})
	assert.Equal(t, 10, points)
}

func TestScoreAllPreservesRegistryOrder(t *testing.T) {
	var sigs []*signature.Signature
	for i := 0; i < 20; i++ {
		sigs = append(sigs, htmlSignature(fmt.Sprintf("sig-%02d", i), fmt.Sprintf("token%02d", i)))
	}
	ev := &Evidence{HTML: "token03 token07 token11"}

	all := ScoreAll(context.Background(), sigs, ev, 4)

	require.Len(t, all, len(sigs))
	for i, d := range all {
		assert.Equal(t, sigs[i].Name, d.Name)
	}
	assert.Equal(t, 15, all[3].Score)
	assert.Equal(t, 15, all[7].Score)
	assert.Zero(t, all[0].Score)
}

func BenchmarkScoreAllDefaultRegistry(b *testing.B) {
	header := http.Header{}
	header.Set("Server", "nginx")
	ev := Collect(&Page{Header: header, Body: wordpressPage}, nil)
	sigs := signature.Default().Signatures()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ScoreAll(context.Background(), sigs, ev, 8)
	}
}

func TestScoreAllIsDeterministicOnLargeBody(t *testing.T) {
	// About 5 MiB of filler with every marker at the very end.
	body := strings.Repeat("<p>lorem ipsum dolor sit amet</p>\n", 150000) +
		`<link rel="stylesheet" href="/wp-content/themes/x.css">` +
		`<script src="/wp-content/plugins/y.js"></script>` +
		`<link rel="stylesheet" href="/templates/site.css">` +
		`<p>Powered by joomla</p>`
	require.Greater(t, len(body), 4<<20)

	ev := Collect(&Page{Header: http.Header{}, Body: body}, nil)
	sigs := signature.Default().Signatures()

	first := Detected(ScoreAll(context.Background(), sigs, ev, 8), DefaultThreshold)
	scores := make(map[string]int, len(first))
	for _, d := range first {
		scores[d.Name] = d.Score
	}
	assert.Equal(t, 30, scores["WordPress"])
	assert.Equal(t, 30, scores["Joomla"])

	for i := 0; i < 10; i++ {
		got := Detected(ScoreAll(context.Background(), sigs, ev, 8), DefaultThreshold)
		require.Equal(t, first, got, "run %d", i)
	}
}
