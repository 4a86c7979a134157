//go:build spindebug

package spincolor

// assert panics when `cond` is false; it is only active with the spindebug tag.
func assert(cond bool, msg string) {
	if !cond {
		panic("spincolor: " + msg)
	}
}
