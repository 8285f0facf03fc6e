package domain

import "strings"

const (
	// ClassAnchor marks anchor nodes in the serialized element format
	ClassAnchor = "anchor"
	// ClassSelected marks the node picked as link source
	ClassSelected = "selected"
)

// ClassSet is an ordered set of style classes
type ClassSet []string

// ParseClasses splits a space separated class string
func ParseClasses(s string) ClassSet {
	var set ClassSet
	for _, c := range strings.Fields(s) {
		set = set.Add(c)
	}
	return set
}

// Has reports whether the class is present
func (s ClassSet) Has(class string) bool {
	for _, c := range s {
		if c == class {
			return true
		}
	}
	return false
}

// Add returns the set with class appended if missing
func (s ClassSet) Add(class string) ClassSet {
	if class == "" || s.Has(class) {
		return s
	}
	return append(s, class)
}

// Remove returns the set without class
func (s ClassSet) Remove(class string) ClassSet {
	out := s[:0:0]
	for _, c := range s {
		if c != class {
			out = append(out, c)
		}
	}
	return out
}

// String joins the classes with spaces
func (s ClassSet) String() string {
	return strings.Join(s, " ")
}

// Clone returns an independent copy
func (s ClassSet) Clone() ClassSet {
	if s == nil {
		return nil
	}
	return append(ClassSet(nil), s...)
}
