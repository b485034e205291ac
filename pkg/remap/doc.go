// Package remap translates integers and integer intervals through a chain of named stages.
//
// A stage is a table of mapping entries. Each entry shifts a source interval onto a destination interval of the same
// length by a constant offset. Values that no entry covers pass through a stage unchanged. Stages are linked by name:
// every stage but the terminal one names the stage that follows it, and a Pipeline walks a value or a set of
// intervals from its start stage until it reaches the terminal stage.
//
// Tables are validated when the Pipeline is built. Overlapping entries, dangling stage names and cyclic chains are
// construction errors. Once built, a Pipeline is read-only, so any number of walks may share it concurrently.
package remap
