package repository

import "errors"

var (
	ErrRedisConnection   = errors.New("redis connection error")
	ErrInvalidRecordData = errors.New("invalid reminder record data")
)
