// Package module is the HTTP framework layer that declared routes are built on.
//
// It wraps http.ServeMux with three additions: routes are declared as values
// carrying an identity and modifiers (rank, format, data, summary, tags),
// groups of routes are mounted under a path prefix, and two routes resolving
// to the same method and pattern are settled by explicit rank rather than by
// registration order.
//
// Paths use ServeMux wildcard syntax ({id}, {rest...}). The angle bracket
// forms <id> and <rest..> are accepted and translated. A path ending in a
// slash matches exactly rather than as a subtree.
package module
