// Package desk wires the store desk menu to its action handlers.
//
// Handlers follow four shapes. Create prompts for fields, validates them and
// calls Add. Search resolves an entity, loads related data and prints it. Edit
// resolves, prompts per field (blank keeps the current value) and calls Update.
// Delete resolves, optionally confirms and calls Remove.
//
// Bad operator input is reported with domain.Inputf; the session runner prints
// the message and presents the menu again.
package desk
