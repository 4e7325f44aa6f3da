// Package store owns the durable collection of loss reports. Creation is
// idempotent: a submission is stored at most once under its request
// identity, no matter how many times a flaky client retries it or a user
// double-taps the form.
package store

import (
	"context"
	"strings"

	"lossdesk/models"
	"lossdesk/pkg/derive"
)

// Input carries one report submission as received from the request layer.
// The store normalizes and validates all fields before writing anything.
type Input struct {
	Manager    string
	Restaurant string
	Reason     string
	Amount     string
	Start      string
	End        string
	Comment    string
	// Identity optionally overrides the derived request identity (clients
	// that track their own idempotency keys). Trimmed; ignored when empty.
	Identity string
}

// InsertHook observes genuine new-row insertions. It is never invoked for a
// duplicate-identity no-op, which keeps external side effects at-most-once
// per logical submission.
type InsertHook func(models.Report)

// Store is the durable report collection.
type Store interface {
	// Create validates the input and inserts it under its request identity
	// unless a row with that identity already exists. Either way it returns
	// the row stored under the identity: first write wins, and the caller
	// cannot tell "created" from "already existed".
	Create(ctx context.Context, in Input) (models.Report, error)
	// List returns all rows, newest first (createdAt descending).
	List(ctx context.Context) ([]models.Report, error)
	// Update validates the input and overwrites the mutable fields of the
	// row with the given id. ID, request identity and creation time are
	// never altered.
	Update(ctx context.Context, id uint, in Input) (models.Report, error)
	// Delete removes the row if present; deleting an unknown id is a no-op.
	Delete(ctx context.Context, id uint) error
}

// maxIdentityLen matches the request_identity column width; every backend
// enforces it so an oversized key fails validation instead of failing only
// once it hits the database.
const maxIdentityLen = 128

var errIdentityTooLong = &derive.ValidationError{Reason: "request identity too long"}

// resolveIdentity validates the input and settles on the idempotency key:
// the trimmed explicit identity when the caller supplied one, the derived
// digest of the normalized fields otherwise.
func resolveIdentity(in Input) (derive.Submission, string, error) {
	sub, err := derive.ValidateSubmission(in.Manager, in.Restaurant, in.Reason, in.Amount, in.Start, in.End, in.Comment)
	if err != nil {
		return derive.Submission{}, "", err
	}
	identity := strings.TrimSpace(in.Identity)
	if len(identity) > maxIdentityLen {
		return derive.Submission{}, "", errIdentityTooLong
	}
	if identity == "" {
		identity = derive.RequestIdentity(sub)
	}
	return sub, identity, nil
}
