package codegen

import (
	"strconv"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
)

// CollisionPolicy decides what happens when two nodes sanitize to the same
// class name within one render.
type CollisionPolicy int

const (
	// CollisionAccept shares the class; the stylesheet rule comes from the
	// first node registered under it.
	CollisionAccept CollisionPolicy = iota
	// CollisionSuffix appends -2, -3, ... so every node gets its own class.
	CollisionSuffix
)

// ParseCollisionPolicy accepts "accept" or "suffix".
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "accept":
		return CollisionAccept, nil
	case "suffix":
		return CollisionSuffix, nil
	}
	return 0, errors.WithHint(errors.Newf("unknown collision policy %q", s), "use accept or suffix")
}

func (p CollisionPolicy) String() string {
	if p == CollisionSuffix {
		return "suffix"
	}
	return "accept"
}

// RenderedClass records one class the markup emitted and the node behind it.
type RenderedClass struct {
	ClassName string
	Node      *figma.Node
	Parent    *figma.Node // nil for the root
	Role      Role
}

// Registry is the used-class registry for a single component render. It is
// not safe for concurrent use and must not be shared between renders.
type Registry struct {
	policy  CollisionPolicy
	entries []RenderedClass
	used    map[string]int // class → times registered
	index   map[string]*figma.Node
}

// NewRegistry returns an empty registry.
func NewRegistry(policy CollisionPolicy) *Registry {
	return &Registry{
		policy: policy,
		used:   make(map[string]int),
		index:  make(map[string]*figma.Node),
	}
}

// Register records that class was emitted for n and returns the class the
// markup must use, which differs from class only under CollisionSuffix.
func (r *Registry) Register(class string, n, parent *figma.Node, role Role) string {
	if r.policy == CollisionSuffix && r.used[class] > 0 {
		for i := r.used[class] + 1; ; i++ {
			candidate := class + "-" + strconv.Itoa(i)
			if r.used[candidate] == 0 {
				r.used[class] = i
				class = candidate
				break
			}
		}
	}
	r.used[class]++
	r.entries = append(r.entries, RenderedClass{ClassName: class, Node: n, Parent: parent, Role: role})
	return class
}

// Index adds every node of the tree to the lookup used for reaction
// destinations.
func (r *Registry) Index(root *figma.Node) {
	figma.Walk(root, func(n *figma.Node) { r.index[n.ID] = n })
}

// Lookup finds an indexed node by id.
func (r *Registry) Lookup(id string) (*figma.Node, bool) {
	n, ok := r.index[id]
	return n, ok
}

// Entries returns every registration in markup order.
func (r *Registry) Entries() []RenderedClass {
	return r.entries
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Distinct returns the first registration of each class, in markup order.
func (r *Registry) Distinct() []RenderedClass {
	seen := make(map[string]bool, len(r.entries))
	var out []RenderedClass
	for _, e := range r.entries {
		if seen[e.ClassName] {
			continue
		}
		seen[e.ClassName] = true
		out = append(out, e)
	}
	return out
}
