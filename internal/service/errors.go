package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrChunkLimitExceeded = errors.New("device sent too many chunks")
	ErrDuplicateUID       = errors.New("duplicate contact uid")
	ErrNoRootElement      = errors.New("transform output has no root element")
)
