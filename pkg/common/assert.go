package common

import "fmt"

// Assert panics when cond is false. Contract violations such as a negative
// key are programmer errors and are not meant to be recovered from.
func Assert(cond bool, msg string) {
	if !cond {
		panic(fmt.Sprintf("Assertion failed: %s", msg))
	}
}

func IsUnsigned(v int) bool {
	return v >= 0
}
