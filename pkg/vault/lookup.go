package vault

// Lookup is the outcome of resolving a vault path: either Found(path) or NotFound.
type Lookup struct {
	path  string
	found bool
}

// NotFound is the zero Lookup.
var NotFound = Lookup{}

func Found(p string) Lookup {
	return Lookup{path: p, found: true}
}

// Path returns the resolved path and whether it was found.
func (l Lookup) Path() (string, bool) {
	return l.path, l.found
}

func (l Lookup) OK() bool {
	return l.found
}

// String returns the path, or "" when not found.
func (l Lookup) String() string {
	return l.path
}
