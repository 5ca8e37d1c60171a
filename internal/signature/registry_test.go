package signature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	r := Default()
	require.NotNil(t, r)
	assert.Greater(t, r.Len(), 15)

	for _, sig := range r.Signatures() {
		assert.NotEmpty(t, sig.Name)
		assert.True(t, sig.HasRules(), "%s has no rules", sig.Name)
	}

	// Built once and shared.
	assert.Same(t, r, Default())
}

func TestDefaultRegistryCoversCategoryNames(t *testing.T) {
	names := []string{
		"WordPress", "Drupal", "Joomla", "Ghost", "Contentful",
		"Shopify", "WooCommerce", "Magento", "BigCommerce",
		"Next.js", "React", "Vue.js", "Angular",
		"Bootstrap", "Tailwind CSS", "Foundation",
		"jQuery", "D3.js", "Chart.js",
	}
	for _, name := range names {
		_, ok := Default().Lookup(name)
		assert.True(t, ok, "missing signature for %s", name)
	}
}

func TestNewRegistryRejectsInvalidSignatures(t *testing.T) {
	tests := []struct {
		name string
		sigs []*Signature
		want error
	}{
		{
			name: "empty name",
			sigs: []*Signature{{AdminPaths: []string{"/admin/"}}},
			want: ErrEmptyName,
		},
		{
			name: "nil signature",
			sigs: []*Signature{nil},
			want: ErrEmptyName,
		},
		{
			name: "no rule groups",
			sigs: []*Signature{{Name: "Empty"}},
			want: ErrNoRules,
		},
		{
			name: "duplicate",
			sigs: []*Signature{
				{Name: "Dup", HTML: insensitive(`a`)},
				{Name: "Dup", CSS: sensitive(`b`)},
			},
			want: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.sigs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRegistryKeepsOrder(t *testing.T) {
	r, err := NewRegistry([]*Signature{
		{Name: "B", HTML: insensitive(`b`)},
		{Name: "A", HTML: insensitive(`a`)},
	})
	require.NoError(t, err)

	sigs := r.Signatures()
	require.Len(t, sigs, 2)
	assert.Equal(t, "B", sigs[0].Name)
	assert.Equal(t, "A", sigs[1].Name)

	// Mutating the returned slice does not affect the registry.
	sigs[0] = nil
	assert.NotNil(t, r.Signatures()[0])
}

func TestGroupWeightsKeepConfidenceOrder(t *testing.T) {
	assert.Equal(t, 30, GroupAdminPaths.Weight())
	assert.Equal(t, 25, GroupAPIPaths.Weight())
	assert.Equal(t, 20, GroupMeta.Weight())
	assert.Equal(t, 20, GroupHeader.Weight())
	assert.Equal(t, 15, GroupHTML.Weight())
	assert.Equal(t, 10, GroupJS.Weight())
	assert.Equal(t, 10, GroupCSS.Weight())

	assert.Greater(t, GroupAPIPaths.Weight(), GroupHeader.Weight())
	assert.Greater(t, GroupHeader.Weight(), GroupHTML.Weight())
	assert.Greater(t, GroupHTML.Weight(), GroupJS.Weight())
}

func TestProbePaths(t *testing.T) {
	sig, ok := Default().Lookup("Shopify")
	require.True(t, ok)
	assert.Equal(t, []string{"/admin/", "/cart.js", "/products.json", "/collections.json"}, sig.ProbePaths())
	assert.Nil(t, sig.Paths(GroupHTML))
	assert.Nil(t, sig.Matchers(GroupAdminPaths))
}
