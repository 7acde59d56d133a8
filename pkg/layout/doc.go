// Package layout executes syntax trees against a layout state.
//
// Functions called from a document do not touch the state directly. They
// return [Commands] which the [Layouter] executes in order:
//
//   - [SetAlignment] installs a new alignment
//   - [LayoutTree] lays out a nested tree under the current state
//   - [RestoreAlignment] reinstalls an alignment captured earlier
//
// The Layouter guarantees that the alignment active before a [LayoutTree]
// command is reinstated when that command ends, also when nested layout
// fails or is cancelled. Text nodes produce [Fragment] values tagged with
// the alignment they were laid out under.
package layout
