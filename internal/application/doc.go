// Package application wires configuration, the packing layout, selection,
// persistence, export and the voice pipeline into one object shared by the
// desktop front-end and the headless commands.
package application
