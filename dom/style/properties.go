package style

import (
	"sort"
	"strings"
)

// ValueKind classifies the values a property accepts. It is used to weed out
// malformed declarations and to decide how a value is computed.
type ValueKind uint8

// Value kinds for known properties.
const (
	KindAny    ValueKind = iota // keywords or free-form values
	KindLength                  // lengths, percentages or keywords
	KindColor                   // colors
	KindNumber                  // plain numbers or keywords
)

// Definition describes a known CSS property.
type Definition struct {
	Initial   Property  // CSS initial value
	Inherited bool      // inherited by default?
	Group     string    // property group, for presentation
	Kind      ValueKind // kind of values accepted
}

func def(initial Property, inherited bool, group string, kind ValueKind) Definition {
	return Definition{Initial: initial, Inherited: inherited, Group: group, Kind: kind}
}

// properties is the table of known properties. Inheritance follows the CSS
// property definitions; typography, text, list and table properties and a few
// others (cursor, visibility, direction, quotes, …) are inherited.
var properties = map[string]Definition{
	// display and positioning
	"display":    def("inline", false, PGDisplay, KindAny),
	"position":   def("static", false, PGDisplay, KindAny),
	"float":      def("none", false, PGDisplay, KindAny),
	"clear":      def("none", false, PGDisplay, KindAny),
	"visibility": def("visible", true, PGDisplay, KindAny),
	"z-index":    def("auto", false, PGDisplay, KindNumber),
	"top":        def("auto", false, PGDisplay, KindLength),
	"right":      def("auto", false, PGDisplay, KindLength),
	"bottom":     def("auto", false, PGDisplay, KindLength),
	"left":       def("auto", false, PGDisplay, KindLength),
	"overflow-x": def("visible", false, PGDisplay, KindAny),
	"overflow-y": def("visible", false, PGDisplay, KindAny),
	"box-sizing": def("content-box", false, PGDisplay, KindAny),
	"cursor":     def("auto", true, PGDisplay, KindAny),
	"pointer-events": def("auto", true, PGDisplay, KindAny),
	"vertical-align": def("baseline", false, PGDisplay, KindLength),
	// dimensions
	"width":      def("auto", false, PGDimension, KindLength),
	"height":     def("auto", false, PGDimension, KindLength),
	"min-width":  def("auto", false, PGDimension, KindLength),
	"min-height": def("auto", false, PGDimension, KindLength),
	"max-width":  def("none", false, PGDimension, KindLength),
	"max-height": def("none", false, PGDimension, KindLength),
	// box model
	"margin-top":          def("0px", false, PGMargins, KindLength),
	"margin-right":        def("0px", false, PGMargins, KindLength),
	"margin-bottom":       def("0px", false, PGMargins, KindLength),
	"margin-left":         def("0px", false, PGMargins, KindLength),
	"padding-top":         def("0px", false, PGPadding, KindLength),
	"padding-right":       def("0px", false, PGPadding, KindLength),
	"padding-bottom":      def("0px", false, PGPadding, KindLength),
	"padding-left":        def("0px", false, PGPadding, KindLength),
	"border-top-width":    def("medium", false, PGBorder, KindLength),
	"border-right-width":  def("medium", false, PGBorder, KindLength),
	"border-bottom-width": def("medium", false, PGBorder, KindLength),
	"border-left-width":   def("medium", false, PGBorder, KindLength),
	"border-top-style":    def("none", false, PGBorder, KindAny),
	"border-right-style":  def("none", false, PGBorder, KindAny),
	"border-bottom-style": def("none", false, PGBorder, KindAny),
	"border-left-style":   def("none", false, PGBorder, KindAny),
	"border-top-color":    def("currentcolor", false, PGBorder, KindColor),
	"border-right-color":  def("currentcolor", false, PGBorder, KindColor),
	"border-bottom-color": def("currentcolor", false, PGBorder, KindColor),
	"border-left-color":   def("currentcolor", false, PGBorder, KindColor),
	"border-top-left-radius":     def("0px", false, PGBorder, KindLength),
	"border-top-right-radius":    def("0px", false, PGBorder, KindLength),
	"border-bottom-right-radius": def("0px", false, PGBorder, KindLength),
	"border-bottom-left-radius":  def("0px", false, PGBorder, KindLength),
	"outline-width":  def("medium", false, PGBorder, KindLength),
	"outline-style":  def("none", false, PGBorder, KindAny),
	"outline-color":  def("currentcolor", false, PGBorder, KindColor),
	"outline-offset": def("0px", false, PGBorder, KindLength),
	// colors and background
	"color":                 def("black", true, PGColor, KindColor),
	"opacity":               def("1", false, PGColor, KindNumber),
	"background-color":      def("transparent", false, PGBackground, KindColor),
	"background-image":      def("none", false, PGBackground, KindAny),
	"background-repeat":     def("repeat", false, PGBackground, KindAny),
	"background-position":   def("0% 0%", false, PGBackground, KindAny),
	"background-size":       def("auto", false, PGBackground, KindAny),
	"background-attachment": def("scroll", false, PGBackground, KindAny),
	// typography
	"font-family":             def("serif", true, PGFont, KindAny),
	"font-size":               def("medium", true, PGFont, KindLength),
	"font-weight":             def("normal", true, PGFont, KindAny),
	"font-style":              def("normal", true, PGFont, KindAny),
	"font-variant":            def("normal", true, PGFont, KindAny),
	"font-stretch":            def("normal", true, PGFont, KindAny),
	"font-size-adjust":        def("none", true, PGFont, KindNumber),
	"font-kerning":            def("auto", true, PGFont, KindAny),
	"font-feature-settings":   def("normal", true, PGFont, KindAny),
	"font-variation-settings": def("normal", true, PGFont, KindAny),
	"font-language-override":  def("normal", true, PGFont, KindAny),
	"line-height":             def("normal", true, PGFont, KindLength),
	// text
	"text-align":                def("start", true, PGText, KindAny),
	"text-align-last":           def("auto", true, PGText, KindAny),
	"text-justify":              def("auto", true, PGText, KindAny),
	"text-indent":               def("0px", true, PGText, KindLength),
	"text-transform":            def("none", true, PGText, KindAny),
	"text-shadow":               def("none", true, PGText, KindAny),
	"text-rendering":            def("auto", true, PGText, KindAny),
	"text-orientation":          def("mixed", true, PGText, KindAny),
	"text-combine-upright":      def("none", true, PGText, KindAny),
	"text-size-adjust":          def("auto", true, PGText, KindAny),
	"text-underline-position":   def("auto", true, PGText, KindAny),
	"text-underline-offset":     def("auto", true, PGText, KindLength),
	"text-emphasis-style":       def("none", true, PGText, KindAny),
	"text-emphasis-color":       def("currentcolor", true, PGText, KindColor),
	"text-emphasis-position":    def("over right", true, PGText, KindAny),
	"text-decoration-line":      def("none", false, PGText, KindAny),
	"text-decoration-style":     def("solid", false, PGText, KindAny),
	"text-decoration-color":     def("currentcolor", false, PGText, KindColor),
	"text-decoration-thickness": def("auto", false, PGText, KindLength),
	"text-overflow":             def("clip", false, PGText, KindAny),
	"letter-spacing":            def("normal", true, PGText, KindLength),
	"word-spacing":              def("normal", true, PGText, KindLength),
	"white-space":               def("normal", true, PGText, KindAny),
	"word-break":                def("normal", true, PGText, KindAny),
	"word-wrap":                 def("normal", true, PGText, KindAny),
	"overflow-wrap":             def("normal", true, PGText, KindAny),
	"hyphens":                   def("manual", true, PGText, KindAny),
	"hyphenate-character":       def("auto", true, PGText, KindAny),
	"tab-size":                  def("8", true, PGText, KindLength),
	"direction":                 def("ltr", true, PGText, KindAny),
	"unicode-bidi":              def("normal", false, PGText, KindAny),
	"writing-mode":              def("horizontal-tb", true, PGText, KindAny),
	"quotes":                    def("auto", true, PGText, KindAny),
	"orphans":                   def("2", true, PGText, KindNumber),
	"widows":                    def("2", true, PGText, KindNumber),
	// lists and generated content
	"list-style-type":     def("disc", true, PGList, KindAny),
	"list-style-position": def("outside", true, PGList, KindAny),
	"list-style-image":    def("none", true, PGList, KindAny),
	"counter-reset":       def("none", false, PGList, KindAny),
	"counter-increment":   def("none", false, PGList, KindAny),
	"content":             def("normal", false, PGList, KindAny),
	// tables
	"border-collapse": def("separate", true, PGTable, KindAny),
	"border-spacing":  def("0px", true, PGTable, KindLength),
	"caption-side":    def("top", true, PGTable, KindAny),
	"empty-cells":     def("show", true, PGTable, KindAny),
	"table-layout":    def("auto", false, PGTable, KindAny),
	// flexbox
	"flex-direction":  def("row", false, PGFlex, KindAny),
	"flex-wrap":       def("nowrap", false, PGFlex, KindAny),
	"flex-grow":       def("0", false, PGFlex, KindNumber),
	"flex-shrink":     def("1", false, PGFlex, KindNumber),
	"flex-basis":      def("auto", false, PGFlex, KindLength),
	"justify-content": def("flex-start", false, PGFlex, KindAny),
	"align-items":     def("stretch", false, PGFlex, KindAny),
	"align-self":      def("auto", false, PGFlex, KindAny),
	"align-content":   def("stretch", false, PGFlex, KindAny),
	"order":           def("0", false, PGFlex, KindNumber),
	"row-gap":         def("normal", false, PGFlex, KindLength),
	"column-gap":      def("normal", false, PGFlex, KindLength),
	// grid
	"grid-template-columns": def("none", false, PGGrid, KindAny),
	"grid-template-rows":    def("none", false, PGGrid, KindAny),
	"grid-template-areas":   def("none", false, PGGrid, KindAny),
	"grid-auto-columns":     def("auto", false, PGGrid, KindAny),
	"grid-auto-rows":        def("auto", false, PGGrid, KindAny),
	"grid-auto-flow":        def("row", false, PGGrid, KindAny),
	"grid-column-start":     def("auto", false, PGGrid, KindAny),
	"grid-column-end":       def("auto", false, PGGrid, KindAny),
	"grid-row-start":        def("auto", false, PGGrid, KindAny),
	"grid-row-end":          def("auto", false, PGGrid, KindAny),
	// transforms, transitions, animations and other effects
	"transform":                  def("none", false, PGEffects, KindAny),
	"transform-origin":           def("50% 50% 0", false, PGEffects, KindAny),
	"transform-style":            def("flat", false, PGEffects, KindAny),
	"perspective":                def("none", false, PGEffects, KindLength),
	"perspective-origin":         def("50% 50%", false, PGEffects, KindAny),
	"backface-visibility":        def("visible", false, PGEffects, KindAny),
	"transition-property":        def("all", false, PGEffects, KindAny),
	"transition-duration":        def("0s", false, PGEffects, KindAny),
	"transition-timing-function": def("ease", false, PGEffects, KindAny),
	"transition-delay":           def("0s", false, PGEffects, KindAny),
	"animation-name":             def("none", false, PGEffects, KindAny),
	"animation-duration":         def("0s", false, PGEffects, KindAny),
	"animation-timing-function":  def("ease", false, PGEffects, KindAny),
	"animation-delay":            def("0s", false, PGEffects, KindAny),
	"animation-iteration-count":  def("1", false, PGEffects, KindAny),
	"animation-direction":        def("normal", false, PGEffects, KindAny),
	"animation-fill-mode":        def("none", false, PGEffects, KindAny),
	"animation-play-state":       def("running", false, PGEffects, KindAny),
	"clip":                       def("auto", false, PGEffects, KindAny),
	"clip-path":                  def("none", false, PGEffects, KindAny),
	"filter":                     def("none", false, PGEffects, KindAny),
	"box-shadow":                 def("none", false, PGEffects, KindAny),
	"resize":                     def("none", false, PGEffects, KindAny),
	// regions
	"flow-into": def("none", false, PGRegion, KindAny),
	"flow-from": def("none", false, PGRegion, KindAny),
}

var keys []string          // sorted property keys
var keyIndex map[string]int // key => position in keys

func init() {
	keys = make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	keyIndex = make(map[string]int, len(keys))
	for i, k := range keys {
		keyIndex[k] = i
	}
}

// Lookup returns the definition of a known property.
func Lookup(key string) (Definition, bool) {
	d, ok := properties[key]
	return d, ok
}

// IsKnown checks if key is a known (longhand) property.
func IsKnown(key string) bool {
	_, ok := properties[key]
	return ok
}

// IsInherited returns wether the standard behaviour for a propery is to be
// inherited or not. Unknown properties are not inherited.
func IsInherited(key string) bool {
	return properties[key].Inherited
}

// InitialValue returns the CSS initial value of a property, or NullStyle for
// unknown properties.
func InitialValue(key string) Property {
	return properties[key].Initial
}

// Keys returns the keys of all known properties in lexical order. Clients must
// not modify the returned slice.
func Keys() []string {
	return keys
}

// Index returns the position of a property key within Keys().
func Index(key string) (int, bool) {
	i, ok := keyIndex[key]
	return i, ok
}

// Count is the number of known properties.
func Count() int {
	return len(keys)
}

// NormalizeKey converts a property key to its canonical form.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
