package manifest

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

type cargoFile struct {
	Dependencies map[string]any `toml:"dependencies"`
}

func parseCargo(content string, meta soup.Metadata) (soup.Set, error) {
	var cargo cargoFile
	if _, err := toml.Decode(content, &cargo); err != nil {
		return soup.Set{}, newError(errors.ErrCodeInvalidStructure, Cargo, "invalid Cargo.toml", err)
	}

	// Sorted so the reported dependency is the same on every run.
	names := make([]string, 0, len(cargo.Dependencies))
	for name := range cargo.Dependencies {
		names = append(names, name)
	}
	slices.Sort(names)

	deps := make([]soup.Dependency, 0, len(names))
	for _, name := range names {
		if name == "" {
			return soup.Set{}, newError(errors.ErrCodeInvalidStructure, Cargo, "dependency with empty name", nil)
		}
		version, err := cargoVersion(name, cargo.Dependencies[name])
		if err != nil {
			return soup.Set{}, err
		}
		deps = append(deps, record(name, version, meta))
	}
	return soup.NewSet(deps...), nil
}

func cargoVersion(name string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case map[string]any:
		raw, ok := v["version"]
		if !ok {
			return "", newError(errors.ErrCodeInvalidVersion, Cargo, fmt.Sprintf("missing version for %q", name), nil)
		}
		version, ok := raw.(string)
		if !ok {
			return "", newError(errors.ErrCodeInvalidVersion, Cargo, fmt.Sprintf("invalid version for %q: %v", name, raw), nil)
		}
		return version, nil
	default:
		return "", newError(errors.ErrCodeInvalidVersion, Cargo, fmt.Sprintf("malformed dependency %q: %v", name, value), nil)
	}
}
