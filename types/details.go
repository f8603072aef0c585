// Package types provides common type definitions shared across tiledoc packages.
// This package contains only type definitions and interfaces, no logic.
package types

// SourceType identifies the type of an accessor.
// Constants for standard types are defined in the source package.
type SourceType string

// DocumentFormat identifies the format of a parsed document.
// Constants for standard formats are defined in the document package.
type DocumentFormat string

// WatcherType identifies the type of a watcher.
// Constants for standard types are defined in the watcher package.
type WatcherType string

// Details holds metadata about where a document came from and how it
// was classified.
type Details struct {
	// Source is the type of accessor (e.g., "fs", "zip", "bytes").
	Source SourceType

	// Path is the path as requested by the caller.
	Path string

	// ResolvedPath is the path the accessor actually read. It differs from
	// Path when a fallback location was used.
	ResolvedPath string

	// Format is the detected document format (e.g., "xml", "json").
	Format DocumentFormat

	// Detection is how the format was chosen ("extension" or "sniff").
	Detection string
}

// DetailsFiller is an interface for populating Details with metadata.
// Accessors implement it to contribute their part.
type DetailsFiller interface {
	FillDetails(d *Details)
}
