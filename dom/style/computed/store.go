package computed

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kvcpers/apollo/dom"
)

// ErrFrozen is returned when writing to a store after the resolution pass
// has finished.
var ErrFrozen = errors.New("computed style store is frozen")

// Store maps node IDs to computed styles. Writes from concurrent goroutines
// are safe as long as they are for distinct IDs. Once frozen, a store is
// read-only.
type Store struct {
	mu     sync.RWMutex
	styles map[dom.NodeID]*Style
	frozen bool
}

// NewStore creates an empty store with room for sizeHint styles.
func NewStore(sizeHint int) *Store {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Store{styles: make(map[dom.NodeID]*Style, sizeHint)}
}

// Put publishes the style of a node.
func (st *Store) Put(id dom.NodeID, s *Style) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.frozen {
		return ErrFrozen
	}
	if _, exists := st.styles[id]; exists {
		return fmt.Errorf("computed style for node %d already published", id)
	}
	st.styles[id] = s
	return nil
}

// Freeze makes the store read-only.
func (st *Store) Freeze() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.frozen = true
}

// Get returns the style of a node. It returns false for nodes which have
// not been styled by the pass.
func (st *Store) Get(id dom.NodeID) (*Style, bool) {
	if st == nil {
		return nil, false
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.styles[id]
	return s, ok
}

// Len returns the number of styled nodes.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.styles)
}

// IDs returns the IDs of all styled nodes in ascending order.
func (st *Store) IDs() []dom.NodeID {
	st.mu.RLock()
	ids := make([]dom.NodeID, 0, len(st.styles))
	for id := range st.styles {
		ids = append(ids, id)
	}
	st.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Each calls f for every styled node, ordered by node ID.
func (st *Store) Each(f func(id dom.NodeID, s *Style)) {
	for _, id := range st.IDs() {
		s, _ := st.Get(id)
		f(id, s)
	}
}

func (st *Store) String() string {
	var b strings.Builder
	st.Each(func(id dom.NodeID, s *Style) {
		fmt.Fprintf(&b, "#%d %s\n", id, s)
	})
	return b.String()
}
