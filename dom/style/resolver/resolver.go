package resolver

import (
	"errors"
	"fmt"

	"github.com/kvcpers/apollo/dom"
	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/cascade"
	"github.com/kvcpers/apollo/dom/style/computed"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/cssom/cssparse"
	"github.com/kvcpers/apollo/dom/style/inherit"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/kvcpers/apollo/dom/style/selector"
	"golang.org/x/sync/errgroup"
)

// ErrNoRoot is returned by Resolve if the root node is not an element of
// the tree.
var ErrNoRoot = errors.New("root of style resolution is not an element")

// settings control a resolution pass.
type settings struct {
	parallel   int
	state      dom.StateProvider
	uaDefaults bool
}

// Option is a type to configure a resolution pass.
type Option func(settings) settings

// WithParallel resolves sibling subtrees concurrently, using up to n
// goroutines. For n < 2 the pass runs sequentially, which is the default.
func WithParallel(n int) Option {
	return func(s settings) settings {
		s.parallel = n
		return s
	}
}

// WithState sets the provider for dynamic element state (hover, focus, …).
// Static state from the attributes checked, disabled, required and readonly
// is always taken into account.
func WithState(sp dom.StateProvider) Option {
	return func(s settings) settings {
		s.state = sp
		return s
	}
}

// WithUserAgentDefaults switches the built-in user agent style sheet on or
// off. It is on by default and precedes any user agent sheet given to
// Resolve.
func WithUserAgentDefaults(on bool) Option {
	return func(s settings) settings {
		s.uaDefaults = on
		return s
	}
}

// Resolve computes the style of every node of the subtree at root. Element
// styles result from the cascade; text nodes receive the styles an element
// without any declarations would get. sheets may be nil.
//
// The tree must be acyclic and neither the tree nor the style sheets may be
// modified while Resolve is running.
func Resolve(tree dom.Tree, root dom.NodeID, sheets *cssom.Sheets, env media.Environment,
	opts ...Option) (*computed.Store, error) {
	//
	if tree == nil || !tree.Contains(root) || !tree.IsElement(root) {
		return nil, ErrNoRoot
	}
	conf := settings{uaDefaults: true}
	for _, opt := range opts {
		conf = opt(conf)
	}
	p := &pass{
		tree:  tree,
		rules: collect(sheets, env, conf.uaDefaults),
		ctx: selector.MatchContext{
			Tree:  tree,
			State: dom.AttributeState{Tree: tree, Dynamic: conf.state},
		},
		propagator: inherit.Propagator{
			ViewportWidth:  env.Width,
			ViewportHeight: env.Height,
		},
		store: computed.NewStore(treeSize(tree)),
	}
	tracer().Debugf("style resolution: %d rules in scope", len(p.rules))
	var err error
	if conf.parallel > 1 {
		err = p.resolveParallel(root, conf.parallel)
	} else {
		err = p.resolve(root, nil)
	}
	p.store.Freeze()
	if err != nil {
		return nil, err
	}
	tracer().Infof("style resolution: styled %d nodes", p.store.Len())
	return p.store, nil
}

// GetComputedStyle returns the style of a node from the store of a pass.
// It returns false for nodes which have not been part of the pass's tree.
func GetComputedStyle(store *computed.Store, id dom.NodeID) (*computed.Style, bool) {
	return store.Get(id)
}

func treeSize(tree dom.Tree) int {
	if t, ok := tree.(interface{ Len() int }); ok {
		return t.Len()
	}
	return 0
}

// pass holds the state of a single resolution pass. It is read-only during
// the tree walk, except for the store.
type pass struct {
	tree       dom.Tree
	rules      []scopedRule
	ctx        selector.MatchContext
	propagator inherit.Propagator
	store      *computed.Store
	root       *computed.Style
}

// style computes the style of a node, given the style of its parent.
func (p *pass) style(id dom.NodeID, parent *computed.Style) *computed.Style {
	if !p.tree.IsElement(id) {
		return p.propagator.Propagate(parent, p.root, nil)
	}
	return p.propagator.Propagate(parent, p.root, p.cascaded(id))
}

// cascaded collects the declarations applying to an element and returns the
// winner for every property.
func (p *pass) cascaded(id dom.NodeID) map[string]style.Property {
	set := cascade.NewSet()
	for i := range p.rules {
		r := &p.rules[i]
		spec, ok := r.selectors.Match(p.ctx, id)
		if !ok {
			continue
		}
		for _, d := range r.decls {
			set.Add(r.candidate(d, spec))
		}
	}
	if attr, ok := p.tree.Attr(id, "style"); ok {
		for _, d := range expand(cssparse.ParseDeclarations(attr)) {
			set.Add(cascade.Candidate{
				Property: d.key,
				Value:    d.value,
				Origin:   cssom.Author.Fold(d.important),
				Inline:   true,
				Index:    d.index,
			})
		}
	}
	return set.Resolve()
}

// publish computes and stores the style of a node. The root style is kept
// for resolving 'rem' units.
func (p *pass) publish(id dom.NodeID, parent *computed.Style) (*computed.Style, error) {
	s := p.style(id, parent)
	if parent == nil {
		p.root = s
	}
	if err := p.store.Put(id, s); err != nil {
		return nil, fmt.Errorf("style resolution: %w", err)
	}
	return s, nil
}

// resolve styles a subtree in pre-order.
func (p *pass) resolve(id dom.NodeID, parent *computed.Style) error {
	s, err := p.publish(id, parent)
	if err != nil {
		return err
	}
	for _, ch := range p.tree.Children(id) {
		if err := p.resolve(ch, s); err != nil {
			return err
		}
	}
	return nil
}

// resolveParallel styles a subtree with fork-join parallelism. Children are
// forked only after their parent's style has been published. If the limit
// of goroutines is reached, a child is styled by the goroutine of its
// parent.
func (p *pass) resolveParallel(root dom.NodeID, limit int) error {
	var g errgroup.Group
	g.SetLimit(limit)
	var visit func(id dom.NodeID, parent *computed.Style) error
	visit = func(id dom.NodeID, parent *computed.Style) error {
		s, err := p.publish(id, parent)
		if err != nil {
			return err
		}
		for _, ch := range p.tree.Children(id) {
			if !p.tree.IsElement(ch) || !g.TryGo(func() error { return visit(ch, s) }) {
				if err := visit(ch, s); err != nil {
					return err
				}
			}
		}
		return nil
	}
	err := visit(root, nil)
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}
