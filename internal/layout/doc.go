// Package layout maps the ordered sample list onto the physical box grid.
// It keeps the grid view consistent with the list, rebuilding it after structural
// changes and patching single cells after weight edits, and prepares the
// export variant of the grid with box headers and full-box padding.
package layout
