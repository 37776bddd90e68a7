// Package template defines the template engine contract used to wrap rendered
// forms in full pages. The gotemplate subpackage provides the pongo2 engine.
package template
