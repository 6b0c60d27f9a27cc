// Package planfile loads declarative journey plans from YAML documents and
// compiles them into immutable plans plus per-waypoint field specs.
//
// Edge and origin conditions are small expressions over submitted data
// ("start.age >= 18", "skipped(details)", empty for always) compiled into
// guards, so a whole journey can live in configuration.
package planfile
