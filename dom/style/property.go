package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient type conversion functions and other helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsUnset denotes if a property is of inheritence-type "unset". We treat
// "revert" the same way, as we do not keep per-origin cascades around.
func (p Property) IsUnset() bool {
	return p == "unset" || p == "revert"
}

// IsCSSWide is true for the CSS-wide keywords initial, inherit, unset and revert.
func (p Property) IsCSSWide() bool {
	return p.IsInitial() || p.IsInherit() || p.IsUnset()
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Normalize trims a property value, collapses inner whitespace and converts
// it to lower case. Values containing quoted strings or URLs are not
// lower-cased.
func (p Property) Normalize() Property {
	s := strings.Join(strings.Fields(string(p)), " ")
	if !strings.ContainsAny(s, `"'`) && !strings.Contains(strings.ToLower(s), "url(") {
		s = strings.ToLower(s)
	}
	return Property(s)
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

func (kv KeyValue) String() string {
	return kv.Key + ": " + kv.Value.String()
}

// --- CSS Property Groups ----------------------------------------------

// PropertyGroup is a collection of propertes sharing a common topic.
// CSS knows a whole lot of properties. We split them up into organisatorial
// groups, mainly for presenting them to humans.
//
// The mapping of property into groups is documented with
// GroupNameFromPropertyKey[...].
type PropertyGroup struct {
	name      string
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	pg := &PropertyGroup{}
	pg.name = groupname
	return pg
}

// Name returns the name of the property group. Once named (during
// construction, property groups may not be renamed.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	s := "[" + pg.name + "] =\n"
	for _, kv := range pg.Properties() {
		s += fmt.Sprintf("  %s = %s\n", kv.Key, kv.Value)
	}
	return s
}

// Properties returns all properties of a group, sorted by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// IsSet is a predicated wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg.propsDict == nil {
		return false
	}
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
func (pg *PropertyGroup) Set(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add a property's value. Does not overwrite an existing value, i.e., does nothing
// if a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	_, exists := pg.propsDict[key]
	if !exists {
		pg.propsDict[key] = p
	}
}

// Len returns the number of properties in the group.
func (pg *PropertyGroup) Len() int {
	return len(pg.propsDict)
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//    GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	if def, ok := properties[key]; ok {
		return def.Group
	}
	return PGX
}

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGMargins    = "Margins"
	PGPadding    = "Padding"
	PGBorder     = "Border"
	PGDimension  = "Dimension"
	PGDisplay    = "Display"
	PGRegion     = "Region"
	PGColor      = "Color"
	PGBackground = "Background"
	PGFont       = "Font"
	PGText       = "Text"
	PGList       = "List"
	PGTable      = "Table"
	PGFlex       = "Flex"
	PGGrid       = "Grid"
	PGEffects    = "Effects"
	PGX          = "X"
)

// GroupNames lists all property group names in presentation order.
var GroupNames = []string{
	PGDisplay, PGDimension, PGMargins, PGPadding, PGBorder, PGColor,
	PGBackground, PGFont, PGText, PGList, PGTable, PGFlex, PGGrid,
	PGEffects, PGRegion,
}
