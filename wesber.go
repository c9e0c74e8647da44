// Package wesber extracts the external resources referenced by CSS and HTML
// documents and rewrites each reference to a deterministic marker, producing
// a manifest of dependencies alongside the rewritten source.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, css/, slog/).
package wesber
