// Package manifest extracts declared dependencies from manifest files.
//
// # Overview
//
// Each supported format is a [Kind]. [Classify] maps a file name to the kinds
// that apply to it and [Parse] runs one extractor over the file content:
//
//	for _, k := range manifest.Classify("Dockerfile") {
//	    deps, err := manifest.Parse(k, content, soup.NewMetadata("requirements"))
//	    ...
//	}
//
// Extractors are pure functions of their input. Every record they emit
// starts with its own copy of the default metadata passed to [Parse].
//
// # Supported Formats
//
//   - [PackageJSON]: the top-level "dependencies" object of package.json
//   - [Cargo]: the [dependencies] table of Cargo.toml, as plain version
//     strings or tables with a "version" key
//   - [CsProj]: PackageReference elements of MSBuild project files, read
//     from their Include and Version attributes
//   - [DockerBase]: FROM lines of a Dockerfile that pin a tag or digest
//   - [Apt]: apt and apt-get install commands, typically in Dockerfile RUN
//     instructions
//
// A Dockerfile is classified as both [DockerBase] and [Apt].
//
// # Errors
//
// Failures are returned as [*ParseError], whose code (see
// [github.com/matzehuels/souper/pkg/errors]) tells malformed content
// (INVALID_STRUCTURE) apart from structurally valid content with a missing
// or unusable field. Lines of a Dockerfile that match no known pattern are
// ignored rather than reported.
package manifest
