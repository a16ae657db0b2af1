// Package orchestrator wires definition sources, record transformers, the
// block registry and the editor/docs generators into a single entry point.
package orchestrator
