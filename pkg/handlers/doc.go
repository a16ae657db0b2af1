// Package handlers dispatches the shortcode-style registration actions hosts
// use to declare blocks and widgets inline. A tag has exactly two
// dot-separated parts, the namespace and the action, for example
// gt_blocks.register. Actions form a closed set resolved at parse time.
package handlers
