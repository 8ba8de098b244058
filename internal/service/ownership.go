package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/repository"
)

// Authorize allows the request only when identityID owns the record.
func Authorize(identityID string, record model.Owned) error {
	if identityID == "" || record.OwnerID() != identityID {
		return ErrForbidden
	}
	return nil
}

// fetchOwned loads a record for identityID. Checks run in order: the id must be a UUID,
// the record must exist, and it must belong to identityID.
func fetchOwned[T model.Owned](ctx context.Context, identityID, id string, get func(context.Context, string) (T, error)) (T, error) {
	var zero T

	parsed, err := uuid.Parse(id)
	if err != nil {
		return zero, ErrInvalidID
	}

	record, err := get(ctx, parsed.String())
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}

	if err := Authorize(identityID, record); err != nil {
		return zero, err
	}
	return record, nil
}

// mapMissing maps a record that vanished between the ownership check and the write.
func mapMissing(err error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
