// Package template renders block templates. The placeholder engine supports
// {{#if path}}, {{#each path}} and {{path}} regions resolved through the
// nested value store; the gotemplate subpackage renders template files with
// pongo2.
package template
