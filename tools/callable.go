package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Callable is a tool implementation. args is the decoded argument mapping
// supplied by the model; the returned value is serialized for the transcript.
type Callable interface {
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ArgsPrototyper is implemented by callables that declare their parameters as
// a struct. ArgsPrototype returns a pointer to a zero value of that struct.
type ArgsPrototyper interface {
	ArgsPrototype() any
}

// HandlerFunc adapts a plain function to Callable. It declares no parameters,
// so its inferred schema is empty.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

func (f HandlerFunc) Call(ctx context.Context, args map[string]any) (any, error) {
	return f(ctx, args)
}

// Func wraps a typed function as a Callable. Arguments are decoded into In
// using json field names; missing fields that declare a default receive it.
func Func[In, Out any](fn func(ctx context.Context, in In) (Out, error)) Callable {
	return &typedFunc[In, Out]{fn: fn}
}

type typedFunc[In, Out any] struct {
	fn func(context.Context, In) (Out, error)

	defaultsOnce sync.Once
	defaults     map[string]any
}

func (f *typedFunc[In, Out]) ArgsPrototype() any { return new(In) }

func (f *typedFunc[In, Out]) Call(ctx context.Context, args map[string]any) (any, error) {
	f.defaultsOnce.Do(func() { f.defaults = Infer(f).Defaults() })

	merged := make(map[string]any, len(args)+len(f.defaults))
	for k, v := range f.defaults {
		merged[k] = v
	}
	for k, v := range args {
		merged[k] = v
	}

	var in In
	if err := decodeInto(merged, &in); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}
	return f.fn(ctx, in)
}

func decodeInto(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}
