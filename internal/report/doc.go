// Package report records how a resolution run went: which source answered each key,
// how often each source was consulted and hit, and which keys stayed unresolved.
//
// A Report only ever stores key and source names. Resolved values are never kept, so
// a snapshot is safe to print or log.
//
// Example usage:
//
//	rep := report.New()
//	r := resolver.New(logger, sources, resolver.WithRecorder(rep))
//	_, err := r.ResolveAll(keys)
//	snap := rep.Snapshot()
//
// The Report is safe for concurrent use.
package report
