package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/storedesk/pkg/menu"
)

// GenerateMermaid produces a Mermaid flowchart of a menu tree.
// Shapes:
// - Root: ((Circle))
// - Group: [Rectangle]
// - Leaf (action): [[Subroutine]]
func GenerateMermaid(m *menu.Menu, title string) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	writeNode := func(id menu.NodeID, label, opener, closer string) {
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(id), opener, escape(label), closer)
		for _, child := range m.Children(id) {
			fmt.Fprintf(&sb, "    %s --> %s\n", nodeID(id), nodeID(child))
		}
	}

	writeNode(menu.Root, title, "((", "))")
	m.Walk(func(id menu.NodeID, _ int, isLeaf bool) {
		if isLeaf {
			writeNode(id, m.Label(id), "[[", "]]")
			return
		}
		writeNode(id, m.Label(id), "[", "]")
	})

	return sb.String()
}

// GenerateTree renders the menu as an indented outline, one label per line.
func GenerateTree(m *menu.Menu) string {
	var sb strings.Builder
	m.Walk(func(id menu.NodeID, depth int, _ bool) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(m.Label(id))
		sb.WriteString("\n")
	})
	return sb.String()
}

func nodeID(id menu.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
