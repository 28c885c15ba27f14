package xslt

import (
	"maps"
	"slices"
)

// Options are the per-call processor settings. They are passed on every
// Apply so that concurrent transforms never share parser state.
type Options struct {
	// NoNet forbids fetching DTDs or entities over the network.
	NoNet bool
	// NoValid skips DTD validation of the input document.
	NoValid bool
	// Params are passed to the stylesheet as string parameters.
	Params map[string]string
}

// DefaultOptions keeps the transform offline and skips validation of the
// plist DTD the input references.
func DefaultOptions() Options {
	return Options{
		NoNet:   true,
		NoValid: true,
	}
}

func (o Options) args() []string {
	var args []string
	if o.NoNet {
		args = append(args, "--nonet")
	}
	if o.NoValid {
		args = append(args, "--novalid")
	}
	for _, name := range slices.Sorted(maps.Keys(o.Params)) {
		args = append(args, "--stringparam", name, o.Params[name])
	}
	return args
}
