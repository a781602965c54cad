package iogame

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/pkg/errcode"
)

// TxError creates an error for a failed game transaction or query.
func TxError(op string, err error) error {
	msg := `Game operation <em>%s</em> failed

<em>How to fix:</em>
  1. Check that PostgreSQL is running and reachable
  2. Check that migrations ran: leafdex migrate
  3. Inspect the log for the underlying database error`
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GameTxError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn, op, err),
	}
}

// UserSyncError creates an error for a failed profile find-or-create.
func UserSyncError(userID string, err error) error {
	msg := "Cannot sync profile for user <em>%s</em>"
	vars := []any{userID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GameUserSyncError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: sync user %s: %w", fn, userID, err),
	}
}
