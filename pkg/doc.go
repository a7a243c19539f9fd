// Package pkg provides the libraries behind the smartview CLI.
//
// # Overview
//
// SmartView turns hierarchy paths into a positioned diagram of nested boxes:
//
//	paths.json
//	     ↓
//	[path]      decode and validate ancestor-to-descendant paths
//	     ↓
//	[semantic]  deduplicate elements and relationships
//	     ↓
//	[assemble]  flatten the DAG into a forest and pick a strategy
//	     ↓
//	[layout]    size and place boxes in the layout tree
//	     ↓
//	[view]      positioned nodes with bounds
//	     ↓
//	[render]    SVG, PNG, PDF, DOT
//
// [pipeline] runs the stages with caching through [cache]. [settings] holds
// the tunables, [errors] the coded errors every stage returns and
// [observability] the hooks for instrumenting a run.
//
// # Quick Start
//
//	paths, _ := path.ReadFile("paths.json")
//	v, err := pipeline.Generate(paths, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifacts, _ := pipeline.Render(v, pipeline.Options{Formats: []string{"svg"}})
package pkg
