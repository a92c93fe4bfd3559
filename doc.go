// Package floating manages keyboard focus for floating surfaces: popovers,
// menus, dialogs and comboboxes anchored to a reference element but rendered
// elsewhere in the tree, often through a portal.
//
// The package runs against a headless Document: an element tree with a
// single focus owner, bubbling events, mutation observers and a task loop of
// microtasks, zero-delay timers and animation frames. On top of it:
//
//   - Node and Tree describe surfaces and how they nest.
//   - FocusManager traps, redirects, dismisses and restores focus for a node.
//   - Portal renders surfaces out of place while keeping their tab order.
//   - Dismiss closes surfaces on Escape and outside presses.
//   - Position asks a GeometryEngine where the floating element goes.
//
// Everything except Position's engine call runs on the document loop and is
// not safe for concurrent use. Results from other goroutines reach the loop
// through Loop.Post.
package floating
