package rte

import (
	"errors"
	"fmt"

	"github.com/danmuck/rtectl/internal/apisite"
)

var ErrNotInvokable = errors.New("rte: api does not accept untyped calls")

type invoker interface {
	invoke(method string, args []any) string
}

// Invoke calls method on api with untyped arguments as they arrive from a script host.
// Non-string parameters are argument errors; SetValue values may also be numbers or
// booleans. Unknown methods record a general exception and return "false".
func Invoke(api apisite.API, method string, args ...any) (string, error) {
	inv, ok := api.(invoker)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrNotInvokable, api)
	}
	return inv.invoke(method, args), nil
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}
