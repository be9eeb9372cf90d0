package usecase

import (
	"context"

	"vidtube/domain/apperror"
)

// toggle flips the presence of a record guarded by a unique index. remove
// runs first so an existing record is always deleted in one atomic step.
// When nothing was removed, insert creates the record; a Conflict from insert
// means a concurrent call already created it, which is the state this call
// wanted, so it is reported as present rather than as an error.
func toggle(ctx context.Context, remove func(context.Context) (bool, error), insert func(context.Context) error) (bool, error) {
	removed, err := remove(ctx)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if err := insert(ctx); err != nil {
		if apperror.Is(err, apperror.Conflict) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
