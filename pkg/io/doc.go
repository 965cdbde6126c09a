// Package io reads and writes the SOUP report, the persisted form of a
// [soup.Snapshot].
//
// # Report Format
//
// The report is a JSON object keyed by manifest path. Each value is the
// sorted array of records declared by that manifest:
//
//	{
//	  "Dockerfile": [
//	    {
//	      "name": "debian",
//	      "version": "12-slim",
//	      "meta": {
//	        "requirements": ""
//	      }
//	    }
//	  ]
//	}
//
// Encoding is canonical: paths, records and metadata keys are sorted, so an
// unchanged tree produces a byte-identical report and diffs in version
// control stay minimal. Decoding followed by encoding reproduces a canonical
// report exactly.
//
// # Import
//
// Use [ImportJSON] to read a report file or [ReadJSON] to read from any
// io.Reader. A missing report file is treated as an empty snapshot.
//
// # Export
//
// Use [ExportJSON] to write a report file or [WriteJSON] to write to any
// io.Writer. ExportJSON replaces the file atomically.
//
// [soup.Snapshot]: github.com/matzehuels/souper/pkg/soup.Snapshot
package io
