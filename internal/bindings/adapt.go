package bindings

import "github.com/roach88/sigprobe/internal/surface"

// The adapters turn typed method expressions into surface entries. Argument
// conversion is a plain type assertion: a wrong argument type or a missing
// argument panics, which the invoker reports as a fault. Surplus arguments
// are ignored, as a dynamically typed target would do; the engine's arity
// pruning keeps those supersets out of the database.

func method0[S, R any](f func(S) R) surface.Method {
	return func(self any, _ ...any) (any, error) {
		return f(self.(S)), nil
	}
}

func method1[S, A, R any](f func(S, A) R) surface.Method {
	return func(self any, args ...any) (any, error) {
		return f(self.(S), args[0].(A)), nil
	}
}

func method2[S, A, B, R any](f func(S, A, B) R) surface.Method {
	return func(self any, args ...any) (any, error) {
		return f(self.(S), args[0].(A), args[1].(B)), nil
	}
}

func method3[S, A, B, C, R any](f func(S, A, B, C) R) surface.Method {
	return func(self any, args ...any) (any, error) {
		return f(self.(S), args[0].(A), args[1].(B), args[2].(C)), nil
	}
}

func static2[A, B, R any](f func(A, B) R) surface.Static {
	return func(args ...any) (any, error) {
		return f(args[0].(A), args[1].(B)), nil
	}
}

func static3[A, B, C, R any](f func(A, B, C) R) surface.Static {
	return func(args ...any) (any, error) {
		return f(args[0].(A), args[1].(B), args[2].(C)), nil
	}
}
