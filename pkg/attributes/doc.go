// Package attributes derives persisted attribute declarations from a block
// schema and reconstructs attribute trees from editor field instances.
package attributes
