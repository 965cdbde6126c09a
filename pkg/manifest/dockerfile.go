package manifest

import (
	"regexp"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/matzehuels/souper/pkg/soup"
)

// fromPattern matches a FROM instruction with an optional --platform flag, an
// image reference pinned by tag, digest or both, and an optional stage alias.
// The digest grammar is the OCI one; the digest itself is not verified.
var fromPattern = regexp.MustCompile(`(?i)^\s*FROM\s+` +
	`(?:--platform=\S+\s+)?` +
	`(?P<name>(?:[a-z0-9.-]+(?::[0-9]+)?/)?[a-z0-9._-]+(?:/[a-z0-9._-]+)*)` +
	`(?::(?P<tag>[a-z0-9_][a-z0-9._-]*))?` +
	`(?:@(?P<digest>` + digest.DigestRegexp.String() + `))?` +
	`(?:\s+AS\s+(?P<alias>\S+))?\s*$`)

var (
	fromName   = fromPattern.SubexpIndex("name")
	fromTag    = fromPattern.SubexpIndex("tag")
	fromDigest = fromPattern.SubexpIndex("digest")
	fromAlias  = fromPattern.SubexpIndex("alias")
)

func parseDockerBase(content string, meta soup.Metadata) soup.Set {
	var set soup.Set
	stages := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		m := fromPattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if m == nil {
			continue
		}

		name, tag, dgst := m[fromName], m[fromTag], m[fromDigest]
		earlierStage := stages[strings.ToLower(name)]
		if alias := m[fromAlias]; alias != "" {
			stages[strings.ToLower(alias)] = true
		}
		if earlierStage || strings.EqualFold(name, "scratch") {
			continue
		}

		var version string
		switch {
		case dgst != "":
			version = dgst
			if tag != "" {
				version = tag + "@" + dgst
			}
		case tag != "":
			version = tag
		default:
			// Nothing pinned, so no version is declared.
			continue
		}
		set.Insert(record(name, version, meta))
	}
	return set
}
