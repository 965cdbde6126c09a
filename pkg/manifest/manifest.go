package manifest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

// Kind identifies a manifest format and the extractor that reads it.
type Kind int

const (
	// PackageJSON reads npm package.json files.
	PackageJSON Kind = iota
	// Cargo reads Rust Cargo.toml files.
	Cargo
	// CsProj reads MSBuild .csproj files.
	CsProj
	// DockerBase reads base images from Dockerfile FROM lines.
	DockerBase
	// Apt reads packages installed with apt or apt-get.
	Apt
)

// Kinds lists every supported format.
var Kinds = []Kind{PackageJSON, Cargo, CsProj, DockerBase, Apt}

var kindNames = map[Kind]string{
	PackageJSON: "package.json",
	Cargo:       "cargo",
	CsProj:      "csproj",
	DockerBase:  "docker-base",
	Apt:         "apt",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Classify returns the kinds that apply to a file name, in extraction order.
// Only the base name is considered. Unrecognized names return nil.
func Classify(name string) []Kind {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	switch {
	case name == "package.json":
		return []Kind{PackageJSON}
	case name == "Cargo.toml":
		return []Kind{Cargo}
	case strings.Contains(name, ".csproj"):
		return []Kind{CsProj}
	case strings.Contains(name, "Dockerfile"):
		return []Kind{DockerBase, Apt}
	}
	return nil
}

// Supported reports whether Classify recognizes name.
func Supported(name string) bool { return len(Classify(name)) > 0 }

const bom = "\uFEFF"

// Parse extracts the dependencies declared in content using the extractor
// for kind. Every record starts with a copy of meta. A leading byte order
// mark is ignored; content that is not valid UTF-8 is rejected.
func Parse(kind Kind, content string, meta soup.Metadata) (soup.Set, error) {
	if !utf8.ValidString(content) {
		return soup.Set{}, newError(errors.ErrCodeInvalidStructure, kind, "content is not valid UTF-8", nil)
	}
	content = strings.TrimPrefix(content, bom)

	switch kind {
	case PackageJSON:
		return parsePackageJSON(content, meta)
	case Cargo:
		return parseCargo(content, meta)
	case CsProj:
		return parseCsProj(content, meta)
	case DockerBase:
		return parseDockerBase(content, meta), nil
	case Apt:
		return parseApt(content, meta), nil
	}
	return soup.Set{}, errors.New(errors.ErrCodeInvalidInput, "unknown manifest kind %d", int(kind))
}

// ParseError reports a manifest that an extractor could not read.
type ParseError struct {
	Code    errors.Code // INVALID_STRUCTURE, MISSING_ATTRIBUTE, MISSING_OR_INVALID_VERSION or ATTRIBUTE_ENCODING
	Kind    Kind
	Message string
	Cause   error
}

func newError(code errors.Code, kind Kind, msg string, cause error) *ParseError {
	return &ParseError{Code: code, Kind: kind, Message: msg, Cause: cause}
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ErrorCode implements errors.Coder.
func (e *ParseError) ErrorCode() errors.Code { return e.Code }

func record(name, version string, meta soup.Metadata) soup.Dependency {
	return soup.Dependency{Name: name, Version: version, Meta: meta.Clone()}
}
