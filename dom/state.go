package dom

import "strings"

// State is a set of dynamic element flags, supplied by the host application.
// Flags are against the default: an element without flags is valid, in range,
// enabled, not checked, etc.
type State uint16

// Dynamic element states relevant for pseudo-class matching.
const (
	Hover State = 1 << iota
	Active
	Focus
	Visited
	Target
	Checked
	Indeterminate
	Disabled
	Invalid
	Required
	ReadOnly
	OutOfRange
)

// Has checks if all flags of f are set in s.
func (s State) Has(f State) bool {
	return s&f == f && f != 0
}

var stateNames = []struct {
	f    State
	name string
}{
	{Hover, "hover"}, {Active, "active"}, {Focus, "focus"}, {Visited, "visited"},
	{Target, "target"}, {Checked, "checked"}, {Indeterminate, "indeterminate"},
	{Disabled, "disabled"}, {Invalid, "invalid"}, {Required, "required"},
	{ReadOnly, "read-only"}, {OutOfRange, "out-of-range"},
}

func (s State) String() string {
	var names []string
	for _, sn := range stateNames {
		if s.Has(sn.f) {
			names = append(names, sn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// StateProvider delivers the dynamic state of elements for a resolution pass.
// Implementations must be safe for concurrent use.
type StateProvider interface {
	State(NodeID) State
}

// NoState is a StateProvider reporting no flags for any element.
var NoState StateProvider = StateMap(nil)

// StateMap is a simple StateProvider. A nil map is a valid, empty provider.
type StateMap map[NodeID]State

// State is part of interface StateProvider.
func (m StateMap) State(id NodeID) State {
	return m[id]
}

// AttributeState derives element state from the static HTML attributes
// `checked`, `disabled`, `required` and `readonly`, and merges it with an
// optional host state provider.
type AttributeState struct {
	Tree    Tree
	Dynamic StateProvider // may be nil
}

// State is part of interface StateProvider.
func (as AttributeState) State(id NodeID) State {
	var s State
	if as.Dynamic != nil {
		s = as.Dynamic.State(id)
	}
	if as.Tree == nil || !as.Tree.IsElement(id) {
		return s
	}
	if _, ok := as.Tree.Attr(id, "checked"); ok {
		s |= Checked
	}
	if _, ok := as.Tree.Attr(id, "disabled"); ok {
		s |= Disabled
	}
	if _, ok := as.Tree.Attr(id, "required"); ok {
		s |= Required
	}
	if _, ok := as.Tree.Attr(id, "readonly"); ok {
		s |= ReadOnly
	}
	return s
}
