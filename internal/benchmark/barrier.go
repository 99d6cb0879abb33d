package benchmark

// Keep returns v unchanged. It is never inlined, so the compiler cannot see
// that the result is unused and drop the computation that produced it.
// Every measured closure passes its variant's output through Keep.
//
//go:noinline
func Keep[T any](v T) T {
	return v
}
