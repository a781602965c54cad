package ioschema

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/pkg/errcode"
)

func MigrateSchemaError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  "Cannot migrate the database schema",
		Err:  fmt.Errorf("from %s: automigrate: %w", fn, err),
	}
}
