package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/storedesk/pkg/domain"
)

// Action is the callback bound to a leaf.
type Action func(ctx context.Context) error

// NodeID addresses a node inside its Menu.
type NodeID int

// Root is the implicit top-level node of every menu.
const Root NodeID = 0

// DefaultBackLabel is the synthesized choice that moves one level up.
const DefaultBackLabel = "Back"

// DefaultTitle is the heading of the root level.
const DefaultTitle = "Main menu"

// Chooser presents a list of options and blocks until one is picked.
// It returns the zero-based index of the chosen option.
type Chooser interface {
	Choose(ctx context.Context, title string, options []string) (int, error)
}

// Command is a leaf selected by the operator.
type Command struct {
	Label  string
	Path   []string
	Action Action
}

type node struct {
	label    string
	action   Action
	parent   NodeID
	children []NodeID
}

// Menu is a tree of labeled actions stored in an arena.
// The tree is built once and then traversed with Show.
type Menu struct {
	nodes     []node
	cursor    NodeID
	title     string
	backLabel string
}

// Option configures a Menu.
type Option func(*Menu)

// WithTitle sets the heading printed above the top-level choices.
func WithTitle(title string) Option {
	return func(m *Menu) {
		m.title = title
	}
}

// WithBackLabel overrides DefaultBackLabel.
func WithBackLabel(label string) Option {
	return func(m *Menu) {
		m.backLabel = label
	}
}

// New creates a menu that contains only the root.
func New(opts ...Option) *Menu {
	m := &Menu{
		nodes:     []node{{parent: -1}},
		title:     DefaultTitle,
		backLabel: DefaultBackLabel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add appends a node under parent and returns its id. A nil action makes a group.
// It panics if parent does not belong to the menu.
func (m *Menu) Add(label string, action Action, parent NodeID) NodeID {
	if !m.valid(parent) {
		panic(fmt.Sprintf("menu: parent %d of %q is not a node of this menu", parent, label))
	}
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, node{label: label, action: action, parent: parent})
	m.nodes[parent].children = append(m.nodes[parent].children, id)
	return id
}

// Group adds a navigable node.
func (m *Menu) Group(label string, parent NodeID) NodeID {
	return m.Add(label, nil, parent)
}

// Item adds a leaf bound to action.
func (m *Menu) Item(label string, action Action, parent NodeID) NodeID {
	if action == nil {
		panic(fmt.Sprintf("menu: item %q has no action", label))
	}
	return m.Add(label, action, parent)
}

// Exit adds a top-level leaf that ends the session.
func (m *Menu) Exit(label string) NodeID {
	return m.Item(label, func(context.Context) error { return domain.ErrQuit }, Root)
}

// Validate checks that every leaf has an action and every group has children.
func (m *Menu) Validate() error {
	var errs []error
	if len(m.nodes[Root].children) == 0 {
		errs = append(errs, errors.New("menu: root has no items"))
	}
	for i := 1; i < len(m.nodes); i++ {
		n := m.nodes[i]
		switch {
		case n.action != nil && len(n.children) > 0:
			errs = append(errs, fmt.Errorf("menu: %q has both an action and children", m.pathString(NodeID(i))))
		case n.action == nil && len(n.children) == 0:
			errs = append(errs, fmt.Errorf("menu: %q has neither an action nor children", m.pathString(NodeID(i))))
		}
	}
	return errors.Join(errs...)
}

// Show presents the active level and follows the operator through groups and
// back choices until a leaf is picked. The leaf's action is returned, not run,
// and the cursor goes back to the root.
func (m *Menu) Show(ctx context.Context, chooser Chooser) (Command, error) {
	for {
		current := m.nodes[m.cursor]
		options := make([]string, 0, len(current.children)+1)
		for _, child := range current.children {
			options = append(options, m.nodes[child].label)
		}
		if m.cursor != Root {
			options = append(options, m.backLabel)
		}

		idx, err := chooser.Choose(ctx, m.heading(), options)
		if err != nil {
			m.cursor = Root
			return Command{}, err
		}
		if idx < 0 || idx >= len(options) {
			m.cursor = Root
			return Command{}, fmt.Errorf("menu: choice %d out of range [0,%d)", idx, len(options))
		}

		if idx == len(current.children) {
			// Back.
			m.cursor = current.parent
			continue
		}

		selected := current.children[idx]
		n := m.nodes[selected]
		if len(n.children) > 0 {
			m.cursor = selected
			continue
		}
		if n.action == nil {
			m.cursor = Root
			return Command{}, fmt.Errorf("menu: %q has neither an action nor children", m.pathString(selected))
		}

		m.cursor = Root
		return Command{Label: n.label, Path: m.path(selected), Action: n.action}, nil
	}
}

// Cursor returns the node whose children Show presents next.
func (m *Menu) Cursor() NodeID {
	return m.cursor
}

// Label returns the label of a node. The root has an empty label.
func (m *Menu) Label(id NodeID) string {
	if !m.valid(id) {
		return ""
	}
	return m.nodes[id].label
}

// Children returns the children of a node in display order.
func (m *Menu) Children(id NodeID) []NodeID {
	if !m.valid(id) {
		return nil
	}
	return append([]NodeID(nil), m.nodes[id].children...)
}

// Walk calls fn for every node below the root in depth-first display order.
func (m *Menu) Walk(fn func(id NodeID, depth int, isLeaf bool)) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		for _, child := range m.nodes[id].children {
			fn(child, depth, len(m.nodes[child].children) == 0)
			visit(child, depth+1)
		}
	}
	visit(Root, 0)
}

func (m *Menu) heading() string {
	if m.cursor == Root {
		return m.title
	}
	return m.pathString(m.cursor)
}

func (m *Menu) path(id NodeID) []string {
	var labels []string
	for cur := id; cur != Root; cur = m.nodes[cur].parent {
		labels = append([]string{m.nodes[cur].label}, labels...)
	}
	return labels
}

func (m *Menu) pathString(id NodeID) string {
	s := ""
	for i, l := range m.path(id) {
		if i > 0 {
			s += " > "
		}
		s += l
	}
	return s
}

func (m *Menu) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(m.nodes)
}
