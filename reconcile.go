package chart

import "strconv"

// layer tracks the rendered nodes of one visual layer by identity key. It is
// the engine's keyed data-join: each render hands it the new key list and it
// sorts nodes into enter, update and exit. The nodes themselves hold the
// current (possibly mid-tween) geometry, so the map doubles as the
// identity → last geometry index that update tweens start from.
type layer struct {
	name  string
	group *Node
	nodes map[string]*Node
}

func newLayer(name string, parent *Node) *layer {
	g := NewContainer(name)
	parent.AddChild(g)
	return &layer{name: name, group: g, nodes: make(map[string]*Node)}
}

// joinResult classifies one join. Nodes is aligned with the incoming keys;
// Enter and Update hold indices into it.
type joinResult struct {
	Nodes  []*Node
	Enter  []int
	Update []int
	Exit   []string
}

// entered reports whether the i-th node was created by this join.
func (r joinResult) entered(i int) bool {
	for _, e := range r.Enter {
		if e == i {
			return true
		}
	}
	return false
}

// join matches keys against the tracked nodes. Unmatched keys get a node from
// create; tracked keys that are absent are disposed immediately. Repeated
// keys are made unique by suffixing their occurrence count. The layer's
// children are reordered to follow keys so paint order tracks data order.
func (l *layer) join(keys []string, create func(i int) *Node) joinResult {
	r := joinResult{Nodes: make([]*Node, len(keys))}
	seen := make(map[string]int, len(keys))
	next := make(map[string]*Node, len(keys))

	for i, k := range keys {
		if n := seen[k]; n > 0 {
			seen[k] = n + 1
			k = k + "#" + strconv.Itoa(n)
		} else {
			seen[k] = 1
		}
		node, ok := l.nodes[k]
		if ok {
			r.Update = append(r.Update, i)
		} else {
			node = create(i)
			node.Key = k
			r.Enter = append(r.Enter, i)
		}
		next[k] = node
		r.Nodes[i] = node
	}

	for k, node := range l.nodes {
		if _, keep := next[k]; !keep {
			r.Exit = append(r.Exit, k)
			node.Dispose()
		}
	}
	l.nodes = next

	for _, c := range l.group.children {
		c.Parent = nil
	}
	l.group.children = l.group.children[:0]
	for _, node := range r.Nodes {
		l.group.AddChild(node)
	}
	return r
}

// node returns the tracked node for key, or nil.
func (l *layer) node(key string) *Node {
	return l.nodes[key]
}

// len returns the number of tracked nodes.
func (l *layer) len() int {
	return len(l.nodes)
}
