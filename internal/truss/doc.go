// Package truss provides the structural data model for the bridge
// simulation: pin-jointed nodes, axial elements, point loads, and the
// material catalog.
//
//   - [Structure]: sole owner of the node/element/load arenas
//   - [Element]: axial member mechanics (stress, strain, failure flags)
//   - [Material]: closed catalog {Wood, Steel, Road} with immutable
//     property records
//
// Elements reference nodes by [NodeID] handle; every topology edit keeps
// the cascade invariant (no element or load ever names an absent node)
// and rederives structural node mass from the live element set.
//
// # Editing
//
// All editing operations are all-or-nothing: a rejected edit
// ([ErrDegenerateElement], [ErrInvalidReference]) leaves the structure
// exactly as it was. Edits are only safe between integration ticks; see
// the sim package.
package truss
