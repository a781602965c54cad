package iostorage

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/pkg/errcode"
)

func UploadError(fileName string, err error) error {
	msg := "Cannot upload image <em>%s</em>"
	vars := []any{fileName}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StorageUploadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: upload %s: %w",
			fn, fileName, err),
	}
}
