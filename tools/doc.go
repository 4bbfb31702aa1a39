// Package tools defines the tool registry and the contracts tools implement.
//
// Includes:
//   - Callable: anything invocable with a decoded argument mapping.
//   - Func[In, Out]: typed callables whose argument struct drives schema inference.
//   - Registry: name -> {callable, description, input schema}, registration ordered.
//   - Infer: derives an input schema from a typed callable's argument struct.
//   - DecodeArgs: turns raw model-supplied arguments into a mapping.
//
// Schemas are advisory: they are advertised to the model but arguments are not
// checked against them unless ValidateArgs is called explicitly.
package tools
