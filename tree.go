package floating

import (
	"errors"
	"fmt"
	"sync"

	"github.com/grindlemire/go-floating/internal/debug"
)

var (
	// ErrNodeExists is returned when registering an id twice.
	ErrNodeExists = errors.New("floating: node already registered")
	// ErrUnknownNode is returned when a parent id is not registered.
	ErrUnknownNode = errors.New("floating: unknown node")
	// ErrTreeCycle is returned when a registration would make a node its
	// own ancestor.
	ErrTreeCycle = errors.New("floating: tree cycle")
)

// Tree is the shared registry of floating nodes and their parent links.
// Nodes register on mount and unregister on unmount; the focus engine only
// reads it.
type Tree struct {
	mu       sync.RWMutex
	nodes    map[string]*Node
	children map[string][]string
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
	}
}

// Register adds n to the tree under its parent id.
func (t *Tree) Register(n *Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.nodes[n.id]; ok {
		return fmt.Errorf("register %s: %w", n.id, ErrNodeExists)
	}
	if n.parentID != "" {
		if n.parentID == n.id {
			return fmt.Errorf("register %s: %w", n.id, ErrTreeCycle)
		}
		if _, ok := t.nodes[n.parentID]; !ok {
			return fmt.Errorf("register %s under %s: %w", n.id, n.parentID, ErrUnknownNode)
		}
		for cur := t.nodes[n.parentID]; cur != nil; cur = t.nodes[cur.parentID] {
			if cur.id == n.id {
				return fmt.Errorf("register %s: %w", n.id, ErrTreeCycle)
			}
			if cur.parentID == "" {
				break
			}
		}
		t.children[n.parentID] = append(t.children[n.parentID], n.id)
	}
	t.nodes[n.id] = n
	n.tree = t
	debug.Log("Tree.Register: node=%s parent=%s", n.id, n.parentID)
	return nil
}

// Unregister removes the node with the given id. Unknown ids are ignored so
// that a repeated unmount is harmless.
func (t *Tree) Unregister(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.nodes[id]
	if !ok {
		return
	}
	delete(t.nodes, id)
	if n.parentID != "" {
		siblings := t.children[n.parentID]
		for i, cid := range siblings {
			if cid == id {
				t.children[n.parentID] = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
		if len(t.children[n.parentID]) == 0 {
			delete(t.children, n.parentID)
		}
	}
	if n.tree == t {
		n.tree = nil
	}
	debug.Log("Tree.Unregister: node=%s", id)
}

// Node returns the registered node with the given id, or nil.
func (t *Tree) Node(id string) *Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nodes[id]
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Children returns the open descendants of id, breadth-first. Descent stops
// at closed nodes: a closed submenu hides whatever it would have opened.
func (t *Tree) Children(id string) []*Node {
	return t.descendants(id, true)
}

// AllChildren returns every registered descendant of id, breadth-first.
func (t *Tree) AllChildren(id string) []*Node {
	return t.descendants(id, false)
}

func (t *Tree) descendants(id string, onlyOpen bool) []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []*Node
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, cid := range t.children[cur] {
			child, ok := t.nodes[cid]
			if !ok {
				continue
			}
			if onlyOpen && !child.IsOpen() {
				continue
			}
			out = append(out, child)
			queue = append(queue, cid)
		}
	}
	return out
}

// Ancestors returns the ancestors of id, closest first.
func (t *Tree) Ancestors(id string) []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []*Node
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	for pid := n.parentID; pid != ""; {
		parent, ok := t.nodes[pid]
		if !ok {
			break
		}
		out = append(out, parent)
		pid = parent.parentID
	}
	return out
}
