package account

import "errors"

var ErrMissingUserID = errors.New("account requires a remote identity reference")
