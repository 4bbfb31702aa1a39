// Package runner drives the tool-use loop against a provider.Client and
// dispatches tool requests to a tools.Registry.
//
// Invariant:
//   - a successful tool request and its result are appended as an adjacent
//     pair so windowing never separates them.
//   - failed requests leave only a system-error turn.
//
// Flow:
//
//	user(text) -> assistant(tool_request) -> tool_result -> ... -> assistant(text)
package runner
