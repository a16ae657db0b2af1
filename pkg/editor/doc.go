// Package editor describes registered blocks to editor hosts: the JSON
// manifest consumed by the block editor script, the control sections used by
// page-builder widgets, and a server-rendered HTML panel for previews.
package editor
