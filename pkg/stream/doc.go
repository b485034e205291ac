// Package stream walks remap queries through their stage chain concurrently.
//
// Every stage of a chain becomes a step connected to the previous one by a channel. A root step feeds the initial
// queries, each step translates what it receives through its stage, and a sink collects what reaches the terminal
// stage. Queries are independent of each other, so a step may run several goroutines over the same input channel
// without any locking on the shared, read-only remap.Pipeline.
//
// The first error stops the whole run: every goroutine watches the pipeline context and returns once it is done.
// Options implementing model.PipelineOption observe the run, see the measure and drawer packages.
package stream
