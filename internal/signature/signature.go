// Package signature holds the static registry of technology signatures
// and the typed rule groups used to recognize each technology.
package signature

// GroupKind identifies a rule group. The group owns the weight every match
// in it contributes; matchers carry no weight of their own.
type GroupKind int

const (
	GroupAdminPaths GroupKind = iota
	GroupAPIPaths
	GroupHTML
	GroupMeta
	GroupHeader
	GroupJS
	GroupCSS
)

// GroupOrder is the order groups are evaluated in. Method descriptions are
// recorded in this order, so it also decides which five survive truncation.
var GroupOrder = []GroupKind{
	GroupAdminPaths,
	GroupAPIPaths,
	GroupHTML,
	GroupMeta,
	GroupHeader,
	GroupJS,
	GroupCSS,
}

// Weight returns the points one match in the group is worth.
// Existence probes > headers/meta > html body > script/css.
func (k GroupKind) Weight() int {
	switch k {
	case GroupAdminPaths:
		return 30
	case GroupAPIPaths:
		return 25
	case GroupMeta, GroupHeader:
		return 20
	case GroupHTML:
		return 15
	case GroupJS, GroupCSS:
		return 10
	default:
		return 0
	}
}

// IsProbe reports whether the group is checked with existence probes
// instead of text matching.
func (k GroupKind) IsProbe() bool {
	return k == GroupAdminPaths || k == GroupAPIPaths
}

func (k GroupKind) String() string {
	switch k {
	case GroupAdminPaths:
		return "admin_paths"
	case GroupAPIPaths:
		return "api_paths"
	case GroupHTML:
		return "html"
	case GroupMeta:
		return "meta"
	case GroupHeader:
		return "header"
	case GroupJS:
		return "js"
	case GroupCSS:
		return "css"
	default:
		return "unknown"
	}
}

// Signature describes how to recognize one technology.
// Signatures are built once at startup and never mutated afterwards.
type Signature struct {
	Name string

	AdminPaths []string // probed, e.g. "/wp-admin/"
	APIPaths   []string // probed, e.g. "/cart.js"

	HTML   []*Matcher // raw body and resource URLs
	Meta   []*Matcher // serialized <meta> elements
	Header []*Matcher // "Name: value" header text
	JS     []*Matcher // inline script text
	CSS    []*Matcher // aggregated class tokens
}

// Paths returns the probe paths of a probe group, nil for text groups.
func (s *Signature) Paths(kind GroupKind) []string {
	switch kind {
	case GroupAdminPaths:
		return s.AdminPaths
	case GroupAPIPaths:
		return s.APIPaths
	}
	return nil
}

// Matchers returns the matchers of a text group, nil for probe groups.
func (s *Signature) Matchers(kind GroupKind) []*Matcher {
	switch kind {
	case GroupHTML:
		return s.HTML
	case GroupMeta:
		return s.Meta
	case GroupHeader:
		return s.Header
	case GroupJS:
		return s.JS
	case GroupCSS:
		return s.CSS
	}
	return nil
}

// HasRules reports whether at least one rule group is populated.
func (s *Signature) HasRules() bool {
	for _, kind := range GroupOrder {
		if len(s.Paths(kind)) > 0 || len(s.Matchers(kind)) > 0 {
			return true
		}
	}
	return false
}

// ProbePaths returns every path the signature needs probed, admin paths first.
func (s *Signature) ProbePaths() []string {
	paths := make([]string, 0, len(s.AdminPaths)+len(s.APIPaths))
	paths = append(paths, s.AdminPaths...)
	return append(paths, s.APIPaths...)
}
