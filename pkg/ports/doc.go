/*
Package ports defines the driven ports (interfaces) of storedesk.

These interfaces decouple the interactive core from persistence, so the same desk
runs against memory, SQLite or Redis storage and is trivially faked in tests.

# Key Interfaces

  - Repository: stores one entity kind as identity-keyed documents.
  - Finder: the id-or-text lookup capability consumed by the resolver.
  - ClientService, CategoryService, ProductService, OrderService: per-entity service ports.
*/
package ports
