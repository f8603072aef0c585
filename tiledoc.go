// Package tiledoc turns references to Tiled assets into document trees.
//
// A Dispatcher resolves a path through a source.Accessor, classifies the
// file as XML or JSON and hands it to the matching parser:
//   - Extension first: tmx, tsx, xml and tx are XML; tmj, tsj, json, tj and
//     tiled-project are JSON
//   - Otherwise the first 12 bytes are sniffed for "<?xml " or `{ "`
//   - XML goes to a document.TreeBuilder, JSON to a document.Parser
//
// Failures never panic. Build reports them through a Reporter and returns
// nil; Load returns the same failures as typed errors.
package tiledoc
