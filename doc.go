/*
Package storedesk is an interactive, menu-driven desk for managing clients,
products, categories and orders.

The reusable core lives in three packages:

  - pkg/menu: a tree of labeled actions and the protocol to navigate it.
  - pkg/resolve: "id, else text search, else ask which one" entity lookup.
  - pkg/runner: the interaction loop and its error containment rules.

Storage is pluggable behind ports.Repository: in memory, SQLite or Redis.

# Usage

	app := storedesk.New(
		storedesk.WithServices(catalog.New(memory.NewRepositories())),
		storedesk.WithConfirmDelete(true),
	)
	if err := app.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package storedesk
