package selector

import (
	"strings"

	"github.com/kvcpers/apollo/dom"
)

// MatchContext is the context for matching selectors against elements of a
// tree. State may be nil, in which case no dynamic state flag is set for any
// element.
type MatchContext struct {
	Tree  dom.Tree
	State dom.StateProvider
}

func (ctx MatchContext) state(id dom.NodeID) dom.State {
	if ctx.State == nil {
		return 0
	}
	return ctx.State.State(id)
}

// Matches checks if a selector matches an element. Selectors carrying a
// pseudo-element never match, as they address a part of an element rather
// than the element itself.
func (sel Selector) Matches(ctx MatchContext, id dom.NodeID) bool {
	if sel.IsZero() || sel.pseudo != NoPseudoElement || ctx.Tree == nil {
		return false
	}
	if !ctx.Tree.Contains(id) || !ctx.Tree.IsElement(id) {
		return false
	}
	return sel.matchFrom(ctx, len(sel.compounds)-1, id)
}

// matchFrom matches compounds[0…i] with compounds[i] anchored at element id,
// walking right to left and backtracking where a combinator admits more than
// one candidate element.
func (sel Selector) matchFrom(ctx MatchContext, i int, id dom.NodeID) bool {
	if !matchCompound(ctx, sel.compounds[i], id) {
		return false
	}
	if i == 0 {
		return true
	}
	switch sel.combs[i-1] {
	case Descendant:
		for a := parentElement(ctx.Tree, id); a != dom.NoNode; a = parentElement(ctx.Tree, a) {
			if sel.matchFrom(ctx, i-1, a) {
				return true
			}
		}
	case Child:
		if p := parentElement(ctx.Tree, id); p != dom.NoNode {
			return sel.matchFrom(ctx, i-1, p)
		}
	case AdjacentSibling:
		if prev := previousElement(ctx.Tree, id); prev != dom.NoNode {
			return sel.matchFrom(ctx, i-1, prev)
		}
	case GeneralSibling:
		for _, s := range precedingElements(ctx.Tree, id) {
			if sel.matchFrom(ctx, i-1, s) {
				return true
			}
		}
	}
	return false
}

// Match checks if any selector of a list matches an element. If so, it
// returns the highest specificity among the matching selectors.
func (l List) Match(ctx MatchContext, id dom.NodeID) (Specificity, bool) {
	var best Specificity
	matched := false
	for _, sel := range l {
		if sel.Matches(ctx, id) {
			if !matched || best.Less(sel.spec) {
				best = sel.spec
			}
			matched = true
		}
	}
	return best, matched
}

func matchCompound(ctx MatchContext, c Compound, id dom.NodeID) bool {
	for _, s := range c {
		if !matchSimple(ctx, s, id) {
			return false
		}
	}
	return true
}

func matchSimple(ctx MatchContext, s Simple, id dom.NodeID) bool {
	tree := ctx.Tree
	switch s.Kind {
	case KindUniversal:
		return true
	case KindType:
		return tree.Tag(id) == s.Name
	case KindID:
		v, ok := tree.Attr(id, "id")
		return ok && v == s.Name
	case KindClass:
		v, ok := tree.Attr(id, "class")
		return ok && containsWord(v, s.Name, false)
	case KindAttribute:
		return matchAttribute(tree, s, id)
	case KindPseudoClass:
		return matchPseudo(ctx, s, id)
	}
	return false
}

func matchAttribute(tree dom.Tree, s Simple, id dom.NodeID) bool {
	v, ok := tree.Attr(id, s.Name)
	if !ok {
		return false
	}
	want := s.Value
	if s.Fold {
		v, want = strings.ToLower(v), strings.ToLower(want)
	}
	switch s.Op {
	case Exists:
		return true
	case Equals:
		return v == want
	case Includes:
		return containsWord(v, want, false)
	case DashMatch:
		return v == want || strings.HasPrefix(v, want+"-")
	case Prefix:
		return want != "" && strings.HasPrefix(v, want)
	case Suffix:
		return want != "" && strings.HasSuffix(v, want)
	case Substring:
		return want != "" && strings.Contains(v, want)
	}
	return false
}

func containsWord(list, word string, fold bool) bool {
	if word == "" {
		return false
	}
	for _, w := range strings.Fields(list) {
		if w == word || (fold && strings.EqualFold(w, word)) {
			return true
		}
	}
	return false
}

func matchPseudo(ctx MatchContext, s Simple, id dom.NodeID) bool {
	tree := ctx.Tree
	st := ctx.state(id)
	switch s.Pseudo {
	case Hover:
		return st.Has(dom.Hover)
	case Active:
		return st.Has(dom.Active)
	case Focus:
		return st.Has(dom.Focus)
	case Visited:
		return isLink(tree, id) && st.Has(dom.Visited)
	case Link:
		return isLink(tree, id) && !st.Has(dom.Visited)
	case Target:
		return st.Has(dom.Target)
	case Enabled:
		return isFormControl(tree, id) && !st.Has(dom.Disabled)
	case Disabled:
		return isFormControl(tree, id) && st.Has(dom.Disabled)
	case Checked:
		return st.Has(dom.Checked)
	case Indeterminate:
		return st.Has(dom.Indeterminate)
	case Valid:
		return isFormControl(tree, id) && !st.Has(dom.Invalid)
	case Invalid:
		return isFormControl(tree, id) && st.Has(dom.Invalid)
	case Required:
		return isFormControl(tree, id) && st.Has(dom.Required)
	case Optional:
		return isFormControl(tree, id) && !st.Has(dom.Required)
	case InRange:
		return isRangeInput(tree, id) && !st.Has(dom.OutOfRange)
	case OutOfRange:
		return isRangeInput(tree, id) && st.Has(dom.OutOfRange)
	case ReadOnly:
		return !isEditable(tree, id) || st.Has(dom.ReadOnly) || st.Has(dom.Disabled)
	case ReadWrite:
		return isEditable(tree, id) && !st.Has(dom.ReadOnly) && !st.Has(dom.Disabled)
	case FirstChild:
		return position(tree, id, false, false) == 1
	case LastChild:
		return position(tree, id, true, false) == 1
	case OnlyChild:
		return position(tree, id, false, false) == 1 && position(tree, id, true, false) == 1
	case FirstOfType:
		return position(tree, id, false, true) == 1
	case LastOfType:
		return position(tree, id, true, true) == 1
	case OnlyOfType:
		return position(tree, id, false, true) == 1 && position(tree, id, true, true) == 1
	case NthChild:
		return s.Nth.Matches(position(tree, id, false, false))
	case NthLastChild:
		return s.Nth.Matches(position(tree, id, true, false))
	case NthOfType:
		return s.Nth.Matches(position(tree, id, false, true))
	case NthLastOfType:
		return s.Nth.Matches(position(tree, id, true, true))
	case Empty:
		for _, ch := range tree.Children(id) {
			if tree.IsElement(ch) || tree.Text(ch) != "" {
				return false
			}
		}
		return true
	case Root:
		return parentElement(tree, id) == dom.NoNode
	}
	return false
}

// --- Structural helpers ----------------------------------------------------

func parentElement(tree dom.Tree, id dom.NodeID) dom.NodeID {
	p := tree.Parent(id)
	if p == dom.NoNode || !tree.IsElement(p) {
		return dom.NoNode
	}
	return p
}

// siblings returns the element siblings of id, including id itself, and the
// index of id among them.
func siblings(tree dom.Tree, id dom.NodeID) ([]dom.NodeID, int) {
	p := tree.Parent(id)
	if p == dom.NoNode {
		return []dom.NodeID{id}, 0
	}
	sibs := dom.ElementChildren(tree, p)
	for i, s := range sibs {
		if s == id {
			return sibs, i
		}
	}
	return []dom.NodeID{id}, 0
}

func previousElement(tree dom.Tree, id dom.NodeID) dom.NodeID {
	sibs, i := siblings(tree, id)
	if i == 0 {
		return dom.NoNode
	}
	return sibs[i-1]
}

// precedingElements returns the preceding element siblings of id, nearest
// first.
func precedingElements(tree dom.Tree, id dom.NodeID) []dom.NodeID {
	sibs, i := siblings(tree, id)
	r := make([]dom.NodeID, 0, i)
	for j := i - 1; j >= 0; j-- {
		r = append(r, sibs[j])
	}
	return r
}

// position returns the 1-based position of id among its element siblings,
// counted from the end if fromLast is set, and only counting siblings of the
// same type if ofType is set.
func position(tree dom.Tree, id dom.NodeID, fromLast, ofType bool) int {
	sibs, i := siblings(tree, id)
	tag := tree.Tag(id)
	pos := 1
	count := func(j int) {
		if !ofType || tree.Tag(sibs[j]) == tag {
			pos++
		}
	}
	if fromLast {
		for j := i + 1; j < len(sibs); j++ {
			count(j)
		}
	} else {
		for j := 0; j < i; j++ {
			count(j)
		}
	}
	return pos
}

func isLink(tree dom.Tree, id dom.NodeID) bool {
	switch tree.Tag(id) {
	case "a", "area", "link":
		_, ok := tree.Attr(id, "href")
		return ok
	}
	return false
}

func isFormControl(tree dom.Tree, id dom.NodeID) bool {
	switch tree.Tag(id) {
	case "input", "button", "select", "textarea", "option", "optgroup", "fieldset":
		return true
	}
	return false
}

func isRangeInput(tree dom.Tree, id dom.NodeID) bool {
	if tree.Tag(id) != "input" {
		return false
	}
	_, min := tree.Attr(id, "min")
	_, max := tree.Attr(id, "max")
	return min || max
}

func isEditable(tree dom.Tree, id dom.NodeID) bool {
	switch tree.Tag(id) {
	case "textarea":
		return true
	case "input":
		t, _ := tree.Attr(id, "type")
		switch strings.ToLower(t) {
		case "", "text", "password", "email", "url", "tel", "search", "number",
			"date", "time", "datetime-local", "month", "week":
			return true
		}
		return false
	}
	if v, ok := tree.Attr(id, "contenteditable"); ok {
		return v != "false"
	}
	return false
}
