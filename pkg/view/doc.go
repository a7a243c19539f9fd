// Package view defines the positioned diagram emitted by a layout run.
//
// A [View] holds one [Node] per rendered occurrence of a semantic element,
// with absolute geometry, the id of the nearest enclosing node and two
// derived counters:
//
//   - NestedCount: number of descendants in the view forest
//   - VerticalCoverage: number of nesting levels the subtree spans
//
// [New] derives both counters from ParentID links, computes [Bounds] and
// sorts nodes so that every container precedes its descendants.
//
// # Serialization
//
// Views use a flat JSON format that renderers and the CLI read back:
//
//	{
//	  "id": "view-1",
//	  "name": "Systems",
//	  "bounds": {"horizontal": {"min": 0, "max": 310}, "vertical": {"min": 0, "max": 60}},
//	  "viewNodes": [{"modelNodeId": "a", "viewNodeId": "n1", "x": 0, "y": 0, ...}],
//	  "viewRelationships": []
//	}
//
// Use [Marshal]/[Unmarshal] for bytes and [WriteFile]/[ReadFile] for files.
package view
