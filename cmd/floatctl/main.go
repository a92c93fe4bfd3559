// Package main provides floatctl, a command line driver for the focus engine.
//
// Usage:
//
//	floatctl run <scenario.yaml>...    Replay scenarios and print the focus trace
//	floatctl check <scenario.yaml>...  Validate scenarios without running them
//	floatctl version                   Print version information
//
// Examples:
//
//	floatctl run examples/scenarios/menu.yaml
//	floatctl run --debug /tmp/floating.log examples/scenarios/*.yaml
//	floatctl check examples/scenarios/popover.yaml
package main

func main() {
	Execute()
}
