// Package tree provides serialization types for person datasets and
// positioned family-tree layouts.
//
// This package defines kintree's wire format, used for JSON files, API
// responses, caching and re-rendering without recomputing a layout.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory
// pipeline and external formats:
//
//   - [Dataset], [Layout]: serialization types (this package)
//   - pkg/person.Person: normalized in-memory nodes
//   - pkg/layout.Layout: internal layout (unit nodes, extents, angles)
//
// Use pkg/layout's Export method to produce a [Layout].
//
// # Constants
//
// This package is the single source of truth for layout constants:
//
//	tree.ModeVertical     // "vertical"
//	tree.ModeHorizontal   // "horizontal"
//	tree.ModeRadial       // "radial"
//	tree.EdgeParent       // "parent", drawn solid
//	tree.EdgeSpouse       // "spouse", drawn dashed
//	tree.StyleSimple      // "simple"
//	tree.StyleClan        // "clan"
//
// # Dataset Serialization
//
// A dataset is either a bare array of person records or an object with a
// "people" array:
//
//	{"people": [{"id": "a", "firstName": "Ada", "gender": "FEMALE", "isAlive": true}]}
//
// Common operations:
//
//	ds, _ := tree.ReadDatasetFile("family.json")
//	tree.WriteDatasetFile(ds, "copy.json")
//
// # Layout Serialization
//
// A [Layout] holds positioned couple units, one card per person, the edges
// between them and the content bounds:
//
//	data, _ := tree.MarshalLayout(l)
//	l, _ = tree.UnmarshalLayout(data)
//	tree.WriteLayoutFile(l, "layout.json")
package tree
