package font

import (
	"bytes"
	_ "embed" // default table
	"sync"
)

//go:embed default.hex
var defaultTable []byte

var (
	defaultOnce sync.Once
	defaultFont *Font
)

// Default returns the font built from the embedded table. The table is
// parsed on first use and the same *Font is returned thereafter; callers
// must not modify it.
func Default() *Font {
	defaultOnce.Do(func() {
		f, err := Parse(bytes.NewReader(defaultTable))
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}
