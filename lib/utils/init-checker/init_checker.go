package initchecker

import "fmt"

// CheckInit panics when a handler dependency was left nil at wiring
// time, naming the dependency instead of failing later with a nil
// dereference deep inside a request. Arguments are name/value pairs.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		panic("CheckInit: arguments must be name/value pairs")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("CheckInit: pair %d has a non-string name", i/2))
		}
		if pairs[i+1] == nil {
			panic(fmt.Sprintf("%s dependency not initialized", name))
		}
	}
}
