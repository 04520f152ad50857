package build

// Dependencies maps a file to the files it imports
type Dependencies map[string][]string

// Invalidate extends the dirty set with every file that transitively
// depends on a dirty file. files gives the enumeration order; the result
// does not depend on it.
func Invalidate(files []string, dirty map[string]bool, deps Dependencies) map[string]bool {
	dependents := map[string][]string{}
	for _, file := range files {
		for _, dep := range deps[file] {
			dependents[dep] = append(dependents[dep], file)
		}
	}
	result := make(map[string]bool, len(files))
	var queue []string
	for _, file := range files {
		if dirty[file] {
			result[file] = true
			queue = append(queue, file)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dependent := range dependents[current] {
			if result[dependent] {
				continue
			}
			result[dependent] = true
			queue = append(queue, dependent)
		}
	}
	return result
}

// SinglePass marks a file when one of its dependencies was marked earlier in
// the same linear scan. Chains that run against the enumeration order are
// missed; Invalidate is the closure used by builds.
func SinglePass(files []string, dirty map[string]bool, deps Dependencies) map[string]bool {
	result := make(map[string]bool, len(files))
	for _, file := range files {
		if dirty[file] {
			result[file] = true
		}
	}
	for _, file := range files {
		if result[file] {
			continue
		}
		for _, dep := range deps[file] {
			if result[dep] {
				result[file] = true
				break
			}
		}
	}
	return result
}
