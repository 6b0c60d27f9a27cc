// Package validation runs a waypoint's field validators and aggregates the
// results. It defines the pipeline, not the rules: a handful of stock
// validators ship for convenience, anything else is a closure.
package validation
