/*
Package domain contains the business entities and shared error values of storedesk.

It is kept free of I/O and persistence concerns. Storage adapters serialize the
entities as JSON; fields tagged `json:"-"` are related collections that services
populate on demand.

# Key Entities

  - Client, Category, Product, Order, OrderItem: the records managed by the desk.
  - InputError: an operator mistake that the session reports and survives.
  - LifecycleHooks: observability callbacks fired by the session runner and resolvers.
*/
package domain
