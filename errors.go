package fpff

import "errors"

var (
	ErrInvalidMagic       = errors.New("fpff: invalid magic")
	ErrUnsupportedVersion = errors.New("fpff: unsupported version")
	ErrFormat             = errors.New("fpff: malformed input")
	ErrUnsupportedType    = errors.New("fpff: unsupported section type")
	ErrEncoding           = errors.New("fpff: cannot encode")
	ErrTypeMismatch       = errors.New("fpff: payload does not match section type")
	ErrIndexRange         = errors.New("fpff: section index out of range")
	ErrLimitExceeded      = errors.New("fpff: limit exceeded")
)
