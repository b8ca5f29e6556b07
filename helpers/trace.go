package helpers

import (
	"runtime"
	"strings"
)

// https://stackoverflow.com/questions/25927660/how-to-get-the-current-function-name

// FuncName returns the name of the calling function (easier calling in error handlers)
func FuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "?"
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?"
	}

	// strip the module path, keep package.Type.Method
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
