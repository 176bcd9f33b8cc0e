package dataset

import (
	_ "embed"
	"sync"
)

//go:embed data/smoke.json
var smokeData []byte

// Builtin returns the embedded smoke dataset, a small labeled set used for
// quick accuracy checks when no dataset file is given. The parse runs once,
// on first call.
var Builtin = sync.OnceValue(func() *Dataset {
	ds, err := Parse(smokeData)
	if err != nil {
		// The embedded file is validated by tests; failing here means the
		// binary itself is corrupt.
		panic("dataset: embedded data: " + err.Error())
	}
	return ds
})
