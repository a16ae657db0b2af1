// Package schema defines the declarative block and widget model and the
// normalizer that turns raw configuration mappings into Block values.
//
// Raw configuration arrives as a map (decoded from JSON, YAML, markdown front
// matter, a database row or a Redis hash). The Normalizer enforces the
// required name and title, expands controls-service sections into tabs, and
// merges the documented defaults. Validate reports authoring mistakes without
// rejecting the block, mirroring how editors surface hints.
package schema
