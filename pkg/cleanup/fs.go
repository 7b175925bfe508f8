package cleanup

import (
	stderrors "errors"
	"io/fs"
)

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
