package repository

import (
	"context"

	"social-dashboard/domain/model"
)

// ILink persists links and their metrics rows.
type ILink interface {
	Create(ctx context.Context, link model.Link) (model.Link, error)
	GetByID(ctx context.Context, id int64) (model.Link, error)
	GetByCanonicalURL(ctx context.Context, canonicalURL string) (model.Link, error)
	ListByCompany(ctx context.Context, companyID int64) ([]model.Link, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Link, error)
	ListActive(ctx context.Context) ([]model.Link, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	SetMondayItemID(ctx context.Context, id int64, itemID string) error
	// Reactivate revives a soft-deleted link under a new owner/company. The
	// canonical_url column is UNIQUE, so a re-added URL must reuse its row.
	Reactivate(ctx context.Context, id int64, userID, companyID int64, url string) (model.Link, error)
	Delete(ctx context.Context, id int64, userID int64) error

	UpsertMetrics(ctx context.Context, linkID int64, m model.MetricsResult) (model.LinkMetrics, error)
	GetMetrics(ctx context.Context, linkID int64) (model.LinkMetrics, error)
}

// ICompany persists companies.
type ICompany interface {
	Create(ctx context.Context, c model.Company) (model.Company, error)
	GetByID(ctx context.Context, id int64) (model.Company, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Company, error)
	Delete(ctx context.Context, id int64, ownerID int64) error
}

// IMondayConnection persists Monday.com board bindings.
type IMondayConnection interface {
	Upsert(ctx context.Context, conn model.MondayConnection) (model.MondayConnection, error)
	GetByCompany(ctx context.Context, companyID int64) (model.MondayConnection, error)
	ListByUser(ctx context.Context, userID int64) ([]model.MondayConnection, error)
}
