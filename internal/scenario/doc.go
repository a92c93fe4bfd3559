// Package scenario loads YAML descriptions of a document, its floating
// surfaces and a list of user steps, replays the steps against the focus
// engine and reports where focus went.
package scenario
