package manifest

import (
	"encoding/json"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

type packageFile struct {
	Dependencies map[string]string `json:"dependencies"`
}

func parsePackageJSON(content string, meta soup.Metadata) (soup.Set, error) {
	var pkg packageFile
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return soup.Set{}, newError(errors.ErrCodeInvalidStructure, PackageJSON, "invalid package.json", err)
	}

	deps := make([]soup.Dependency, 0, len(pkg.Dependencies))
	for name, version := range pkg.Dependencies {
		if name == "" {
			return soup.Set{}, newError(errors.ErrCodeInvalidStructure, PackageJSON, "dependency with empty name", nil)
		}
		deps = append(deps, record(name, version, meta))
	}
	return soup.NewSet(deps...), nil
}
