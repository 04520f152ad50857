package build

import (
	"github.com/viant/sequencescript/registry"
	"golang.org/x/mod/semver"
	"strconv"
)

const (
	keyPrefix          = "sequencescript/"
	stdlibHashKey      = keyPrefix + "stdlib_hash"
	compilerVersionKey = keyPrefix + "compiler_version"
)

// CompilerVersion is recorded with every clean build. Outputs written by a
// release with another major or minor version are rebuilt.
const CompilerVersion = "v1.1.0"

// compatible reports whether outputs recorded under version can be reused
func compatible(version string) bool {
	return semver.IsValid(version) && semver.MajorMinor(version) == semver.MajorMinor(CompilerVersion)
}

func depsCountKey(resolvePath string) string {
	return keyPrefix + "files/" + resolvePath + "/deps_count"
}

func depKey(resolvePath string, index int) string {
	return keyPrefix + "files/" + resolvePath + "/deps_" + strconv.Itoa(index)
}

// recordedDependencies reads the dependency list stored by the previous run
func recordedDependencies(r registry.Registry, resolvePath string) ([]string, bool) {
	count, ok := r.GetInt32(depsCountKey(resolvePath))
	if !ok {
		return nil, false
	}
	result := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		if dep, ok := r.GetString(depKey(resolvePath, i)); ok {
			result = append(result, dep)
		}
	}
	return result, true
}

func recordDependencies(r registry.Registry, resolvePath string, deps []string) {
	r.SetInt32(depsCountKey(resolvePath), int32(len(deps)))
	for i, dep := range deps {
		r.SetString(depKey(resolvePath, i), dep)
	}
}
