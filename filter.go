package wesber

// Filter restricts extraction to a set of reference kinds.
// The zero value matches every kind.
type Filter struct {
	names map[string]struct{}
}

// NewFilter returns a Filter matching only the given names.
// With no names the filter matches everything.
func NewFilter(names ...string) Filter {
	if len(names) == 0 {
		return Filter{}
	}
	f := Filter{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		f.names[name] = struct{}{}
	}
	return f
}

// Match returns true if name passes the filter.
func (f Filter) Match(name string) bool {
	if len(f.names) == 0 {
		return true
	}
	_, ok := f.names[name]
	return ok
}
