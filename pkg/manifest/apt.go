package manifest

import (
	"regexp"
	"strings"

	"github.com/matzehuels/souper/pkg/soup"
)

var (
	// A trailing backslash, optionally followed by an inline comment, joins
	// the next line onto the current one.
	aptContinuation = regexp.MustCompile(`\\[ \t]*(?:#[^\n]*)?\r?\n`)
	aptBlanks       = regexp.MustCompile(`[ \t]+`)
	aptSeparators   = regexp.MustCompile(`&&|\|\||;|\|`)
	aptInstall      = regexp.MustCompile(`(?:^|\s)(?:sudo\s+)?apt(?:-get)?(?:\s+-{1,2}[a-zA-Z][a-zA-Z0-9-]*)*\s+install(?:\s|$)`)
	aptPackage      = regexp.MustCompile(`^([a-zA-Z0-9][a-zA-Z0-9.+\-:]*)(?:=([a-zA-Z0-9.+\-_~:]+))?$`)
)

// aptArgOptions take a separate argument that is not a package.
var aptArgOptions = map[string]bool{
	"-o": true, "--option": true,
	"-t": true, "--target-release": true,
	"-c": true, "--config-file": true,
}

func parseApt(content string, meta soup.Metadata) soup.Set {
	content = aptContinuation.ReplaceAllString(content, " ")
	content = aptBlanks.ReplaceAllString(content, " ")

	var set soup.Set
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		for _, segment := range aptSeparators.Split(strings.TrimSuffix(line, "\r"), -1) {
			loc := aptInstall.FindStringIndex(segment)
			if loc == nil {
				continue
			}
			for _, d := range aptPackages(segment[loc[1]:], meta) {
				set.Insert(d)
			}
		}
	}
	return set
}

func aptPackages(args string, meta soup.Metadata) []soup.Dependency {
	var deps []soup.Dependency
	fields := strings.Fields(args)
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") {
			if aptArgOptions[f] {
				i++
			}
			continue
		}
		m := aptPackage.FindStringSubmatch(f)
		if m == nil {
			continue
		}
		version := m[2]
		if version == "" {
			version = soup.UnknownVersion
		}
		deps = append(deps, record(m[1], version, meta))
	}
	return deps
}
