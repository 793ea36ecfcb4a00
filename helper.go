package ipclog

import (
	stderrs "errors"
	"runtime"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// errorChain walks an error's cause chain, outermost first.
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func errorChain(err error) []string {
	const maxDepth = 50
	var chain []string
	seen := map[string]bool{}

	for depth := 0; err != nil && depth < maxDepth; depth++ {
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		err = stderrs.Unwrap(err)
	}
	return chain
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}

// callerFrame reports the source location skip frames above callerFrame.
// path is the full file name; records only show its base name.
func callerFrame(skip int) (path string, line int, function string) {
	pc, path, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", 0, "???"
	}
	function = "???"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = shortFuncName(fn.Name())
	}
	return path, line, function
}

// shortFuncName trims the import path from a qualified function name:
// "github.com/a/b.(*T).M" becomes "(*T).M".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
