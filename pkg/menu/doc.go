/*
Package menu implements the hierarchical command menu driving a storedesk session.

A Menu is built once at startup with Group, Item and Exit, and is then traversed
with Show, which walks the operator through nested groups (offering a synthesized
"Back" choice below the top level) until a leaf is picked. Show never runs the
action; it hands it to the caller, typically the session runner.

Nodes live in an arena and are addressed by NodeID, so parents and children
reference each other by index.

	m := menu.New()
	products := m.Group("Products", menu.Root)
	m.Item("New product", newProduct, products)
	m.Exit("Exit")
	if err := m.Validate(); err != nil {
		log.Fatal(err)
	}
*/
package menu
