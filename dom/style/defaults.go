package style

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// displayDefaults holds the user-agent defaults for the `display` property
// of HTML elements. Elements not listed are displayed inline, which is the
// initial value of `display`.
var displayDefaults = map[Property][]string{
	"block": {"html", "body", "div", "article", "aside", "footer", "header",
		"nav", "section", "main", "figure", "figcaption", "blockquote", "pre",
		"address", "p", "h1", "h2", "h3", "h4", "h5", "h6", "hgroup", "ul", "ol",
		"dl", "dt", "dd", "hr", "fieldset", "legend", "details", "summary",
		"form", "dialog", "menu"},
	"list-item":          {"li"},
	"table":              {"table"},
	"table-caption":      {"caption"},
	"table-header-group": {"thead"},
	"table-row-group":    {"tbody"},
	"table-footer-group": {"tfoot"},
	"table-row":          {"tr"},
	"table-cell":         {"td", "th"},
	"table-column-group": {"colgroup"},
	"table-column":       {"col"},
	"inline-block":       {"input", "button", "select", "textarea", "meter", "progress"},
	"none": {"head", "meta", "link", "style", "script", "title", "noscript",
		"template", "rp"},
	"ruby":      {"ruby"},
	"ruby-text": {"rt"},
}

// htmlDisplay maps tag names to their display default.
var htmlDisplay = make(map[string]Property)

func init() {
	for d, tags := range displayDefaults {
		for _, tag := range tags {
			htmlDisplay[tag] = d
		}
	}
}

// DisplayPropertyForTag returns the default `display` CSS property for an
// HTML element, given its (lower case) tag name.
func DisplayPropertyForTag(tag string) Property {
	if d, ok := htmlDisplay[tag]; ok {
		return d
	}
	return InitialValue("display")
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	return DisplayPropertyForTag(node.Data)
}

// UserAgentCSS returns the text of the built-in user-agent stylesheet. It
// consists of the display defaults for HTML elements, followed by
// the typographic defaults of HTML5 rendering.
func UserAgentCSS() string {
	modes := make([]string, 0, len(displayDefaults))
	for d := range displayDefaults {
		modes = append(modes, string(d))
	}
	sort.Strings(modes)
	var b strings.Builder
	for _, d := range modes {
		b.WriteString(strings.Join(displayDefaults[Property(d)], ", "))
		b.WriteString(" { display: ")
		b.WriteString(d)
		b.WriteString(" }\n")
	}
	b.WriteString(uaTypography)
	return b.String()
}

// uaTypography follows the default styles of the HTML5 rendering section.
const uaTypography = `
[hidden] { display: none }
body { margin: 8px }
h1, h2, h3, h4, h5, h6, strong, b, th { font-weight: bold }
h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em }
h4 { margin-top: 1.33em; margin-bottom: 1.33em }
h5 { font-size: 0.83em; margin-top: 1.67em; margin-bottom: 1.67em }
h6 { font-size: 0.67em; margin-top: 2.33em; margin-bottom: 2.33em }
p, dl { margin-top: 1em; margin-bottom: 1em }
blockquote, figure { margin: 1em 40px }
pre { font-family: monospace; white-space: pre; margin-top: 1em; margin-bottom: 1em }
ul, ol { margin-top: 1em; margin-bottom: 1em; padding-left: 40px }
ul { list-style-type: disc }
ol { list-style-type: decimal }
dd { margin-left: 40px }
a:link { color: blue; text-decoration: underline }
a:visited { color: purple; text-decoration: underline }
em, i, cite, var, dfn, address { font-style: italic }
u, ins { text-decoration: underline }
s, strike, del { text-decoration: line-through }
small { font-size: smaller }
big { font-size: larger }
sub { font-size: smaller; vertical-align: sub }
sup { font-size: smaller; vertical-align: super }
code, kbd, samp, tt { font-family: monospace }
abbr[title] { text-decoration: underline dotted }
mark { background-color: yellow; color: black }
hr { margin-top: 0.5em; margin-bottom: 0.5em; border-style: inset; border-width: 1px }
table { border-collapse: separate; border-spacing: 2px; border-color: gray }
caption, th, button { text-align: center }
thead, tbody, tfoot { vertical-align: middle }
tr, td, th { vertical-align: inherit }
td, th { padding: 1px }
fieldset { margin-left: 2px; margin-right: 2px; padding: 0.35em 0.75em 0.625em; border: 2px groove }
legend { padding-left: 2px; padding-right: 2px }
iframe { border: 2px inset }
meter, progress { vertical-align: -0.2em }
dialog { position: absolute; left: 0; right: 0; margin: auto; border: solid; padding: 1em; background: white; color: black }
bdi { unicode-bidi: isolate }
bdo { unicode-bidi: bidi-override }
`
