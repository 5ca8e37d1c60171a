package signature

// builtin returns the built-in signature table in registration order.
// Registration order breaks score ties inside a category.
//
// Text groups follow one convention: HTML, Meta and Header patterns are
// case-insensitive, JS and CSS patterns are case-sensitive.
func builtin() []*Signature {
	return []*Signature{
		// Content Management Systems
		{
			Name:       "WordPress",
			AdminPaths: []string{"/wp-admin/", "/wp-login.php"},
			APIPaths:   []string{"/wp-json/wp/v2/", "/xmlrpc.php"},
			HTML: insensitive(
				`/wp-content/themes/`,
				`/wp-content/plugins/`,
				`/wp-includes/`,
				`wp_enqueue_script`,
				`wp-block-`,
				`wp-embed`,
				`wp-image-\d+`,
				`wp-caption`,
			),
			Meta:   insensitive(`<meta name="generator" content="WordPress`),
			Header: insensitive(`X-Pingback.*xmlrpc\.php`, `/wp-json/`),
			JS:     sensitive(`wp\.`, `wpAjax`),
			CSS:    sensitive(`wp-block-`, `post-\d+`, `page-id-\d+`),
		},
		{
			Name:       "Drupal",
			AdminPaths: []string{"/admin/", "/user/login"},
			APIPaths:   []string{"/jsonapi/", "/rest/"},
			HTML: insensitive(
				`/sites/default/files/`,
				`/core/modules/`,
				`/core/themes/`,
				`data-drupal-selector`,
				`drupal\.settings`,
				`drupal-ajax`,
			),
			Meta:   insensitive(`<meta name="generator" content="Drupal`),
			Header: insensitive(`X-Drupal-Cache`, `X-Drupal-Dynamic-Cache`, `X-Generator.*Drupal`),
			JS:     sensitive(`drupalSettings`, `Drupal\.behaviors`),
			CSS:    sensitive(`\bdrupal-`),
		},
		{
			Name:       "Joomla",
			AdminPaths: []string{"/administrator/", "/component/"},
			HTML: insensitive(
				`/media/jui/`,
				`/templates/.*\.css`,
				`joomla`,
				`option=com_`,
			),
			Meta: insensitive(`<meta name="generator" content="Joomla`),
			JS:   sensitive(`Joomla\.`),
		},
		{
			Name:       "Ghost",
			AdminPaths: []string{"/ghost/"},
			HTML: insensitive(
				`/ghost/api/content/`,
				`ghost-portal`,
				`ghost-sodo-search`,
			),
			Meta:   insensitive(`<meta name="generator" content="Ghost`),
			Header: insensitive(`X-Ghost-Cache-Status`),
		},
		{
			Name: "Contentful",
			HTML: insensitive(
				`images\.ctfassets\.net`,
				`cdn\.contentful\.com`,
			),
			JS: sensitive(`contentful\.createClient`),
		},

		// E-commerce Platforms
		{
			Name:       "Shopify",
			AdminPaths: []string{"/admin/"},
			APIPaths:   []string{"/cart.js", "/products.json", "/collections.json"},
			HTML: insensitive(
				`cdn\.shopify\.com`,
				`\.myshopify\.com`,
				`Shopify\.theme`,
				`/assets/shopify_`,
				`shopify-checkout`,
				`Shopify\.routes`,
			),
			Header: insensitive(`X-Shopify-Stage`, `server.*Shopify`),
			JS:     sensitive(`Shopify\.`, `ShopifyAPI`),
			CSS:    sensitive(`\bshopify-`),
		},
		{
			Name: "WooCommerce",
			HTML: insensitive(
				`woocommerce`,
				`/wc-ajax/`,
				`wc_single_product_params`,
				`woocommerce-page`,
				`shop_table`,
				`product_cat-`,
			),
			JS:  sensitive(`wc_`, `woocommerce_params`),
			CSS: sensitive(`woocommerce-`, `wc-block-`, `product-`),
		},
		{
			Name:       "Magento",
			AdminPaths: []string{"/admin/", "/downloader/"},
			APIPaths:   []string{"/rest/V1/", "/api/"},
			HTML: insensitive(
				`/skin/frontend/`,
				`/js/mage/`,
				`Mage\.Cookies`,
				`var/cache/mage`,
			),
			Header: insensitive(`X-Magento-`),
			JS:     sensitive(`Mage\.`, `Magento`),
		},
		{
			Name: "BigCommerce",
			HTML: insensitive(
				`cdn11\.bigcommerce\.com`,
				`bigcommerce`,
				`/bc-sf-filter/`,
			),
			JS: sensitive(`BigCommerce`),
		},

		// JavaScript Frameworks
		{
			Name: "Next.js",
			HTML: insensitive(
				`/_next/static/`,
				`__NEXT_DATA__`,
			),
			Header: insensitive(`X-Powered-By: Next\.js`, `X-Nextjs-`),
			JS:     sensitive(`__NEXT_`, `Next\.`),
		},
		{
			Name: "React",
			HTML: insensitive(
				`data-reactroot`,
				`__REACT_DEVTOOLS_GLOBAL_HOOK__`,
				`react-dom`,
				`react\.production\.min\.js`,
			),
			JS: sensitive(`React\.`, `ReactDOM\.`),
		},
		{
			Name: "Vue.js",
			HTML: insensitive(
				`vue(\.runtime)?(\.global)?(\.prod)?(\.min)?\.js`,
				`data-v-[0-9a-f]{8}`,
				`data-server-rendered="true"`,
			),
			JS: sensitive(`new Vue\(`, `Vue\.createApp`, `__VUE__`),
		},
		{
			Name: "Angular",
			HTML: insensitive(
				`ng-version=`,
				`\sng-app`,
				`angular(\.min)?\.js`,
				`_nghost-`,
			),
			JS: sensitive(`angular\.module\(`, `platformBrowserDynamic`),
		},

		// CSS Frameworks
		{
			Name: "Bootstrap",
			HTML: insensitive(
				`bootstrap(\.min)?\.css`,
				`bootstrap(\.bundle)?(\.min)?\.js`,
			),
			CSS: sensitive(
				`\bcol-(xs|sm|md|lg|xl)-\d+\b`,
				`\bbtn-(primary|secondary|outline-\w+)\b`,
				`\bnavbar-expand(-\w+)?\b`,
				`\bcontainer-fluid\b`,
			),
		},
		{
			Name: "Tailwind CSS",
			HTML: insensitive(
				`tailwindcss`,
				`tailwind(\.min)?\.css`,
			),
			CSS: sensitive(
				`\b(sm|md|lg|xl):[\w-]+`,
				`\bbg-[a-z]+-\d{2,3}\b`,
				`\btext-[a-z]+-\d{2,3}\b`,
				`\b[pm][xytblr]?-\d+\b`,
			),
		},
		{
			Name: "Foundation",
			HTML: insensitive(
				`foundation(\.min)?\.css`,
				`foundation(\.min)?\.js`,
			),
			JS:  sensitive(`\.foundation\(`, `Foundation\.`),
			CSS: sensitive(`\b(small|medium|large)-\d+\b`, `\btop-bar\b`),
		},

		// JavaScript Libraries
		{
			Name: "jQuery",
			HTML: insensitive(
				`jquery`,
				`code\.jquery\.com`,
			),
			JS: sensitive(`jQuery\(`, `\$\(document\)`, `\$\.ajax`),
		},
		{
			Name: "D3.js",
			HTML: insensitive(
				`d3(\.v\d+)?(\.min)?\.js`,
				`d3js\.org`,
			),
			JS: sensitive(`d3\.select(All)?\(`, `d3\.scale`),
		},
		{
			Name: "Chart.js",
			HTML: insensitive(
				`chart(\.umd)?(\.min)?\.js`,
				`cdn\.jsdelivr\.net/npm/chart\.js`,
			),
			JS: sensitive(`new Chart\(`),
		},

		// Other Technologies
		{
			Name:   "Cloudflare",
			HTML:   insensitive(`/cdn-cgi/`),
			Header: insensitive(`Cf-Ray:`, `Server: cloudflare`),
		},
		{
			Name: "Google Tag Manager",
			HTML: insensitive(
				`googletagmanager\.com/gtm\.js`,
				`googletagmanager\.com/ns\.html`,
			),
			JS: sensitive(`GTM-[A-Z0-9]{4,}`),
		},
	}
}
