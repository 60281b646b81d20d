package store

import (
	"delivery-dispatch-service/internal/domain"
	"slices"
)

const defaultBuckets = 10

// HashTable is a chaining hash table of packages keyed by package id.
// It implements ports.PackageStore. Not safe for concurrent mutation.
type HashTable struct {
	buckets [][]*domain.Package
}

func NewHashTable(numBuckets int) *HashTable {
	if numBuckets <= 0 {
		numBuckets = defaultBuckets
	}
	return &HashTable{buckets: make([][]*domain.Package, numBuckets)}
}

func (h *HashTable) bucket(id int) int {
	b := id % len(h.buckets)
	if b < 0 {
		b += len(h.buckets)
	}
	return b
}

// Find returns the package stored under id.
func (h *HashTable) Find(id int) (*domain.Package, bool) {
	for _, pkg := range h.buckets[h.bucket(id)] {
		if pkg.PackageID == id {
			return pkg, true
		}
	}
	return nil, false
}

// Insert adds pkg unless its id is already present.
func (h *HashTable) Insert(pkg *domain.Package) bool {
	if pkg == nil {
		return false
	}
	if _, ok := h.Find(pkg.PackageID); ok {
		return false
	}
	b := h.bucket(pkg.PackageID)
	h.buckets[b] = append(h.buckets[b], pkg)
	return true
}

// Remove deletes the package stored under id and reports whether it existed.
func (h *HashTable) Remove(id int) bool {
	b := h.bucket(id)
	i := slices.IndexFunc(h.buckets[b], func(p *domain.Package) bool { return p.PackageID == id })
	if i < 0 {
		return false
	}
	h.buckets[b] = slices.Delete(h.buckets[b], i, i+1)
	return true
}

func (h *HashTable) ResetAllStatus() {
	for _, bucket := range h.buckets {
		for _, pkg := range bucket {
			pkg.ResetStatus()
		}
	}
}

// All returns every package ordered by id.
func (h *HashTable) All() []*domain.Package {
	var out []*domain.Package
	for _, bucket := range h.buckets {
		out = append(out, bucket...)
	}
	slices.SortFunc(out, func(a, b *domain.Package) int { return a.PackageID - b.PackageID })
	return out
}

func (h *HashTable) Len() int {
	n := 0
	for _, bucket := range h.buckets {
		n += len(bucket)
	}
	return n
}

// Clear removes every package.
func (h *HashTable) Clear() {
	for i := range h.buckets {
		h.buckets[i] = nil
	}
}
