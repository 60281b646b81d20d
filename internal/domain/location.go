package domain

// A delivery location and graph vertex.
// Locations are identified by street address; they carry no traversal state.
type Location struct {
	Name    string
	Address string
	Zipcode string
}

func (l Location) String() string { return l.Address }
