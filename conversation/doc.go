// Package conversation holds the in-memory transcript exchanged with a model.
//
// A transcript is an ordered list of turns. Each turn is one of:
//   - user text
//   - assistant text
//   - assistant tool request (name, arguments, request id)
//   - tool result (request id, payload)
//   - system error (text shown to the model after a failed dispatch)
//
// Turns are only ever appended. A tool result always follows the tool request
// carrying the same request id.
package conversation
