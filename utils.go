package cascade

import "strings"

// normalizeMethods uppercases the set into a fresh slice. An empty set, or
// any MethodWild entry, leaves the route unconstrained (nil).
func normalizeMethods(methods []string) []string {
	if len(methods) == 0 {
		return nil
	}

	out := make([]string, 0, len(methods))
	for _, m := range methods {
		switch m {
		case "":
			panic("method must not be empty")
		case MethodWild:
			return nil
		}
		out = append(out, strings.ToUpper(m))
	}
	return out
}

// mergeMethods appends the new methods to seen, keeping first-seen order and
// dropping duplicates.
func mergeMethods(seen, methods []string) []string {
	for _, m := range methods {
		known := false
		for _, s := range seen {
			if s == m {
				known = true
				break
			}
		}
		if !known {
			seen = append(seen, m)
		}
	}
	return seen
}

// allowHeader renders the Allow header value as a sorted, comma separated
// list. Sorts a copy: the input keeps its first-seen order, which handlers
// observe through Context.MethodsMatched.
func allowHeader(methods []string) string {
	sorted := append([]string(nil), methods...)

	// sort.Strings(sorted) unfortunately causes unnecessary allocations
	// due to the slice being moved to the heap and interface conversion
	for i, l := 1, len(sorted); i < l; i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	return strings.Join(sorted, ", ")
}
