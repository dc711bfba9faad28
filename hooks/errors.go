package hooks

import "errors"

var (
	ErrUnknownHook   = errors.New("unknown hook")
	ErrUnknownOption = errors.New("unknown hook option")
)
