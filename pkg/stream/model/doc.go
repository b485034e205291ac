// Package model provides the data structures shared by the stream package and its options.
// It defines the steps that carry values between stages and the hooks an option can attach to a run.
package model
