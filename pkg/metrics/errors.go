package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrGather = errors.New("metrics gather failed")
)

// Families gathers the global registry and indexes families by name.
func Families() (map[string]int, error) {
	mfs, err := customRegistry.Gather()
	if err != nil {
		return nil, errors.Join(ErrGather, err)
	}
	out := make(map[string]int, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = len(mf.GetMetric())
	}
	return out, nil
}
