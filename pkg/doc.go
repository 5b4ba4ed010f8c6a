// Package pkg provides the core libraries for Kintree family tree layout.
//
// # Overview
//
// Kintree turns a flat list of people, each with optional father, mother and
// spouse references, into a drawable family tree. Married couples become a
// single unit; children hang below the unit of their parents. The pkg
// directory is organized into four areas:
//
//  1. Domain: [person], [relations], [forest], [layout], [filter]
//  2. Presentation: [tree], [render], [viewport]
//  3. Orchestration: [pipeline]
//  4. Infrastructure: [store], [cache], [config], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	JSON file / SQLite / MongoDB
//	         ↓
//	    [store] (load records)
//	         ↓
//	    [person] (normalize: years, gender, generation, children)
//	         ↓
//	    [relations] (index, parents, spouses, siblings)
//	         ↓
//	    [forest] (couple units, root selection)
//	         ↓
//	    [layout] (vertical, horizontal or radial positions)
//	         ↓
//	    [render] (SVG/PNG/PDF/JSON/DOT)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/kintree/pkg/forest"
//	    "github.com/matzehuels/kintree/pkg/layout"
//	    "github.com/matzehuels/kintree/pkg/person"
//	    "github.com/matzehuels/kintree/pkg/render/sink"
//	    "github.com/matzehuels/kintree/pkg/tree"
//	)
//
//	ds, _ := tree.ReadDatasetFile("family.json")
//	people := person.Normalize(ds.People)
//	roots := forest.Build(people)
//	l, _ := layout.Compute(roots, layout.Radial, layout.DefaultOptions())
//	svg := sink.RenderSVG(layout.Export(l))
//
// Most callers go through [pipeline.Runner], which adds caching of datasets,
// layouts and rendered artifacts.
//
// # Main Packages
//
// [relations] - Id index over normalized people with derived relations:
// parents, spouses, children split by gender, siblings, and on request
// paternal and maternal uncles and aunts with their spouses.
//
// [forest] - Couple-forest builder. Each person appears in exactly one unit;
// a spouse who is also someone's child is claimed by the first unit to reach
// them.
//
// [layout] - Tidy-tree layout in three projections sharing one measurement
// pass. Radial mode assigns every unit an angular sector proportional to its
// leaf count.
//
// [viewport] - Zoom, pan and fit-to-screen transform for interactive views,
// plus full-tree export through any [viewport.Surface].
//
// [filter] - Clan, generation, gender and living filters with name search;
// non-matching cards are dimmed rather than removed.
//
// # Testing
//
//	go test ./pkg/...                   # All tests
//	go test -run Example ./pkg/...      # Examples only
//
// Tests for the Redis cache and the MongoDB store are skipped unless
// KINTREE_TEST_REDIS_ADDR and KINTREE_TEST_MONGO_URI are set.
package pkg
