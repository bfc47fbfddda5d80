package resolver

import (
	"sort"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/cascade"
	"github.com/kvcpers/apollo/dom/style/css"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/cssom/cssparse"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/kvcpers/apollo/dom/style/selector"
)

// scopedRule is a rule in scope of a pass, i.e. with matching media
// conditions, together with its position in the cascade.
type scopedRule struct {
	selectors  selector.List
	decls      []declaration
	origin     cssom.Origin // base origin of the rule's sheet
	order      int          // source order, unique within a pass
	layered    bool
	layerOrder int
}

// declaration is a longhand declaration with a valid value.
type declaration struct {
	key       string
	value     style.Property
	important bool
	index     int // position within the rule
}

func (r *scopedRule) candidate(d declaration, spec selector.Specificity) cascade.Candidate {
	return cascade.Candidate{
		Property:    d.key,
		Value:       d.value,
		Origin:      r.origin.Fold(d.important),
		Layered:     r.layered,
		LayerOrder:  r.layerOrder,
		Specificity: spec,
		Order:       r.order,
		Index:       d.index,
	}
}

// expand expands shorthands into longhands and drops declarations of
// unknown properties and declarations with invalid values.
func expand(decls []cssom.Declaration) []declaration {
	var r []declaration
	for _, d := range decls {
		kvs, err := style.ExpandShorthand(d.Property, d.Value)
		if err != nil {
			tracer().Debugf("dropping declaration %s: %v", d, err)
			continue
		}
		for _, kv := range kvs {
			if !css.ValidValue(kv.Key, kv.Value) {
				tracer().Debugf("dropping declaration %s: %s", kv.Key, kv.Value)
				continue
			}
			r = append(r, declaration{
				key:       kv.Key,
				value:     kv.Value,
				important: d.Important,
				index:     len(r),
			})
		}
	}
	return r
}

// origins lists the origins of style sheets in source order.
var origins = []cssom.Origin{cssom.UserAgent, cssom.User, cssom.Author}

// collect gathers the rules in scope of a pass. Source order runs across
// all sheets, user agent sheets first, and author sheets last. Media query
// lists are evaluated once per pass.
func collect(sheets *cssom.Sheets, env media.Environment, uaDefaults bool) []scopedRule {
	mediaCache := make(map[*media.QueryList]bool)
	inScope := func(r *cssom.Rule) bool {
		for _, ql := range r.Media {
			if ql == nil {
				continue
			}
			m, ok := mediaCache[ql]
			if !ok {
				m = ql.Matches(env)
				mediaCache[ql] = m
				tracer().Debugf("media %q matches = %v", ql, m)
			}
			if !m {
				return false
			}
		}
		return true
	}
	var rules []scopedRule
	order := 0
	for _, origin := range origins {
		list := sheets.Of(origin)
		if origin == cssom.UserAgent && uaDefaults {
			list = append([]cssom.StyleSheet{cssparse.UserAgent()}, list...)
		}
		layers := layerOrder(list)
		for _, sheet := range list {
			for _, r := range sheet.Rules() {
				order++
				if !inScope(r) {
					continue
				}
				decls := expand(r.Declarations)
				if len(decls) == 0 || len(r.Selectors) == 0 {
					continue
				}
				sr := scopedRule{
					selectors: r.Selectors,
					decls:     decls,
					origin:    origin,
					order:     order,
				}
				if r.Layer != nil {
					sr.layered, sr.layerOrder = true, layers[r.Layer.Name]
				}
				rules = append(rules, sr)
			}
		}
	}
	return rules
}

// layerOrder ranks the cascade layers of the sheets of one origin. Within a
// sheet, layers rank by their declared order. A layer first used by a later
// sheet ranks above the layers of earlier sheets.
func layerOrder(sheets []cssom.StyleSheet) map[string]int {
	type rank struct {
		name         string
		sheet, order int
	}
	var ranks []rank
	seen := make(map[string]bool)
	for i, sheet := range sheets {
		for _, r := range sheet.Rules() {
			if r.Layer != nil && !seen[r.Layer.Name] {
				seen[r.Layer.Name] = true
				ranks = append(ranks, rank{r.Layer.Name, i, r.Layer.Order})
			}
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].sheet != ranks[j].sheet {
			return ranks[i].sheet < ranks[j].sheet
		}
		return ranks[i].order < ranks[j].order
	})
	order := make(map[string]int, len(ranks))
	for i, r := range ranks {
		order[r.name] = i
	}
	return order
}
