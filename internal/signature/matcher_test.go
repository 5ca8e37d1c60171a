package signature

import (
	"strings"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherCaseSensitivity(t *testing.T) {
	ci := MustCompile(`Shopify\.theme`, false)
	assert.True(t, ci.MatchString("window.SHOPIFY.THEME = {}"))

	cs := MustCompile(`Shopify\.`, true)
	assert.True(t, cs.MatchString("Shopify.routes"))
	assert.False(t, cs.MatchString("shopify.routes"))
}

func TestMatcherSearchesAnywhere(t *testing.T) {
	m := MustCompile(`/wp-content/themes/`, false)
	assert.True(t, m.MatchString(`<link href="https://example.com/wp-content/themes/x.css">`))
	assert.False(t, m.MatchString(`/wp-content/uploads/`))
	assert.False(t, m.MatchString(""))
}

func TestMatcherDotStopsAtNewline(t *testing.T) {
	m := MustCompile(`X-Pingback.*xmlrpc\.php`, false)
	assert.True(t, m.MatchString("X-Pingback: https://example.com/xmlrpc.php"))
	assert.False(t, m.MatchString("X-Pingback: none\nxmlrpc.php"))
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	_, err := Compile(`(unclosed`, false)
	require.Error(t, err)

	assert.Panics(t, func() { MustCompile(`[`, true) })
}

func TestMatcherHasNoMatchTimeout(t *testing.T) {
	m := MustCompile(`/templates/.*\.css`, false)
	assert.Equal(t, regexp2.DefaultMatchTimeout, m.re.MatchTimeout)

	body := strings.Repeat("<p>lorem ipsum dolor sit amet</p>\n", 200000) + `<link href="/templates/site.css">`
	for i := 0; i < 3; i++ {
		assert.True(t, m.MatchString(body))
	}
}

func TestMatcherString(t *testing.T) {
	m := MustCompile(`wp-block-`, true)
	assert.Equal(t, "wp-block-", m.String())
	assert.True(t, m.CaseSensitive)
}

func BenchmarkMatcherLargeInput(b *testing.B) {
	m := MustCompile(`/wp-content/plugins/`, false)
	body := strings.Repeat("<div class=\"row\">content</div>\n", 5000) + "/wp-content/plugins/y.js"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.MatchString(body)
	}
}
