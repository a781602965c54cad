package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/pkg/errcode"
)

func ConnectionError(host string, port int, database string, err error) error {
	msg := "Cannot connect to PostgreSQL at <em>%s:%d/%s</em>"
	vars := []any{host, port, database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

func PingError(host string, port int, database string, err error) error {
	msg := "Database at <em>%s:%d/%s</em> did not answer a ping"
	vars := []any{host, port, database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBPingError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: ping %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

func GORMConnectionError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  "Cannot open GORM session over the connection pool",
		Err:  fmt.Errorf("from %s: gorm open: %w", fn, err),
	}
}

func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("from %s: operator used before Connect", fn),
	}
}
