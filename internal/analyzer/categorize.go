package analyzer

import "sort"

// Category names
const (
	CategoryCMS          = "Content Management Systems"
	CategoryEcommerce    = "E-commerce Platforms"
	CategoryJSFramework  = "JavaScript Frameworks"
	CategoryCSSFramework = "CSS Frameworks"
	CategoryJSLibrary    = "JavaScript Libraries"
	CategoryOther        = "Other Technologies"
)

// CategoryOrder lists every category in presentation order.
var CategoryOrder = []string{
	CategoryCMS,
	CategoryEcommerce,
	CategoryJSFramework,
	CategoryCSSFramework,
	CategoryJSLibrary,
	CategoryOther,
}

// categoryMembers lists the technologies of every fixed category.
// Names are matched literally.
var categoryMembers = map[string][]string{
	CategoryCMS:          {"WordPress", "Drupal", "Joomla", "Ghost", "Contentful"},
	CategoryEcommerce:    {"Shopify", "WooCommerce", "Magento", "BigCommerce"},
	CategoryJSFramework:  {"Next.js", "React", "Vue.js", "Angular"},
	CategoryCSSFramework: {"Bootstrap", "Tailwind CSS", "Foundation"},
	CategoryJSLibrary:    {"jQuery", "D3.js", "Chart.js"},
}

var categoryByName = func() map[string]string {
	m := make(map[string]string)
	for category, names := range categoryMembers {
		for _, name := range names {
			m[name] = category
		}
	}
	return m
}()

// RankedEntry is one technology in a category of the result.
type RankedEntry struct {
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Methods []string `json:"methods"`
}

// CategoryOf returns the category a technology name belongs to.
func CategoryOf(name string) string {
	if category, ok := categoryByName[name]; ok {
		return category
	}
	return CategoryOther
}

// Categorize groups detections into categories, highest score first.
// detections must be in registry order: equal scores keep that order.
// Categories without entries are left out.
func Categorize(detections []Detection) map[string][]RankedEntry {
	categories := make(map[string][]RankedEntry)

	for _, d := range detections {
		category := CategoryOf(d.Name)
		methods := make([]string, len(d.Methods))
		copy(methods, d.Methods)
		categories[category] = append(categories[category], RankedEntry{
			Name:    d.Name,
			Score:   d.Score,
			Methods: methods,
		})
	}

	for _, entries := range categories {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
	}

	return categories
}
