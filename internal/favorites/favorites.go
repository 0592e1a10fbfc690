// Package favorites maintains a user's favorite-recipe membership set.
//
// The set is represented as an ordered slice of recipe ids so insertion order
// survives for display, while membership stays duplicate-free. Mutations are
// idempotent: adding a member or removing a non-member changes nothing.
package favorites

// Contains reports whether id is a member of favs.
func Contains(favs []string, id string) bool {
	for _, f := range favs {
		if f == id {
			return true
		}
	}
	return false
}

// Add appends id to favs unless it is already a member. The returned bool
// reports whether the set changed. The input slice is not modified.
func Add(favs []string, id string) ([]string, bool) {
	if Contains(favs, id) {
		return favs, false
	}

	out := make([]string, len(favs), len(favs)+1)
	copy(out, favs)
	return append(out, id), true
}

// Remove deletes id from favs if present, preserving the order of the
// remaining members. The returned bool reports whether the set changed, so
// callers can skip persisting a no-op.
func Remove(favs []string, id string) ([]string, bool) {
	if !Contains(favs, id) {
		return favs, false
	}

	out := make([]string, 0, len(favs)-1)
	for _, f := range favs {
		if f != id {
			out = append(out, f)
		}
	}
	return out, true
}
