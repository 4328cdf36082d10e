package utils

import "errors"

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrUploadFailed   = errors.New("video upload failed")
	ErrStoreFailure   = errors.New("record store failure")
)
