// Package pkg provides the core libraries for FlowCanvas node-graph
// editing.
//
// # Overview
//
// FlowCanvas models a visual node-graph editor: typed nodes with
// directional ports placed on an infinite canvas, wired together by
// connections rendered as curves. The pkg directory is organized into
// focused areas:
//
//  1. [geom] - Canvas geometry (points, rects, Bézier curves, the
//     screen/canvas transform)
//  2. [graph] - The document model (nodes, ports, connections,
//     hit testing, wiring rules)
//  3. [history] - Snapshot-based undo/redo
//  4. [canvas] - The state engine that UI gesture handlers call into
//  5. [graphio] - JSON interchange and wiring previews
//  6. [config], [errors], [buildinfo] - Application plumbing
//
// # Architecture
//
// The typical data flow through FlowCanvas:
//
//	Gesture/Command Input
//	         ↓
//	canvas.Engine (mutations, selection, view, history)
//	         ↓
//	graph.Document (validated state)
//	         ↓
//	graphio (interchange JSON, DOT/SVG previews)
//
// The engine is the single mutation surface; everything below it is
// side-effect free and independently testable.
package pkg
