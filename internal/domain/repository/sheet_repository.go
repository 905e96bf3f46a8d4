package repository

import (
	"context"
	"errors"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
)

// ErrNoUpdate marks a fetch whose response shape was neither an array nor a
// recognized error object. The sync loop logs it and keeps the previous
// snapshot; it is never surfaced to users.
var ErrNoUpdate = errors.New("sheet: unexpected response shape")

// BackendError is a failure the spreadsheet script itself reported, or a
// recognized permissions/deployment problem. Message is user-facing.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return e.Message }

// SheetRepository is the remote spreadsheet-script endpoint. Reads return
// whole collections; writes are whole-collection overwrites (saveProducts)
// or single-object upserts (saveGroup), mirroring the script's semantics.
type SheetRepository interface {
	// FetchOrders returns the raw order rows, headers untouched.
	FetchOrders(ctx context.Context) ([]entity.SheetRow, error)

	// FetchProducts returns the product catalog.
	FetchProducts(ctx context.Context) ([]entity.Product, error)

	// FetchGroups returns the group sessions.
	FetchGroups(ctx context.Context) ([]entity.GroupSession, error)

	// SubmitOrder appends one order row.
	SubmitOrder(ctx context.Context, order entity.OrderSubmission) error

	// SaveProducts replaces the entire products sheet.
	SaveProducts(ctx context.Context, products []entity.Product) error

	// SaveGroup upserts one group session.
	SaveGroup(ctx context.Context, group entity.GroupSession) error
}
