package iohttp

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/pkg/errcode"
)

// StartError creates an error for a server that failed to start or
// shut down cleanly.
func StartError(port int, err error) error {
	msg := `HTTP server failed on port <em>%d</em>

<em>How to fix:</em>
  1. Check that the port is free: lsof -i :%d
  2. Pick another port: LEAFDEX_SERVER_PORT=<port> leafdex serve`
	vars := []any{port, port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: server on :%d: %w", fn, port, err),
	}
}
