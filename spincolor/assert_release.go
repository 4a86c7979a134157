//go:build !spindebug

package spincolor

func assert(bool, string) {}
