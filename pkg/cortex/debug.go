package cortex

import (
	"fmt"
	"reflect"
)

// DebugMode enables strict validation of values entering memory. When on,
// mutations panic if a value that can't round-trip through JSON (a func, a
// chan, an unsafe pointer) is written, instead of surfacing later as a
// garbled persisted field. Off by default; servers flip it from config in
// development.
var DebugMode bool

// checkValue panics on non-serializable values. Only called in debug mode.
func checkValue(path string, v any) {
	if v == nil {
		return
	}
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			checkValue(joinPath(path, k), e)
		}
		return
	case []any:
		for _, e := range t {
			checkValue(path, e)
		}
		return
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64,
		[]string, []int, []float64:
		return
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		panic(fmt.Sprintf("cortex: non-serializable %T at %q", v, path))
	}
}
