package usecase

import (
	"errors"

	"vidtube/domain/apperror"
)

var (
	errInvalidLike   = errors.New("like must reference exactly one target")
	errDuplicateLike = apperror.NewConflict("Like already exists")
	errStore         = errors.New("connection reset by peer")
)
