// Package resolve implements the entity resolver shared by every action that
// needs "the product", "the client" or "the category" the operator means.
//
// A query that parses as an integer is an id lookup. Anything else is a text
// search whose matching rules belong to the service behind the finder port;
// several matches lead to a single disambiguation prompt.
package resolve
