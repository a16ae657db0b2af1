// Package fieldtypes holds the field type registry: the fixed table that maps
// a field type tag to its editor control, attribute storage type and default
// baseline. Unknown tags resolve to nothing so the consuming field can be
// skipped instead of failing the whole schema.
package fieldtypes
