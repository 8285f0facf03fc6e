// Package topology implements the editing operations of a network map.
//
// An Engine holds the graph of devices, anchors and link segments together
// with its undo history and the latest metrics snapshot. All edits go
// through the engine so that the structural rules hold after every
// operation:
//
//   - Two devices are joined by at most one logical link, where a logical
//     link is a chain of segments through anchors.
//   - An anchor is only ever removed when it has exactly two connections,
//     merging them back into one segment. Removing a segment removes any
//     anchors it leaves dangling.
//   - Renaming a device drops every anchor chain that hangs off it.
//
// Rejected operations leave the graph and the history untouched. Accepted
// ones recompute the derived display fields and record one snapshot.
//
// Links are normally drawn interactively: EnterLinkMode, two PickNode
// calls and a ConfirmLink with the attributes from the form. The session
// state is exposed through LinkSession so a UI can render the current step.
package topology
