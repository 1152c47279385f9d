package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
	"social-dashboard/infrastructure/cache"
	"social-dashboard/infrastructure/logger"
	"social-dashboard/infrastructure/parser"
)

var (
	ErrLinkExists   = errors.New("link already registered")
	ErrLinkNotFound = errors.New("link not found")
	ErrNotOwner     = errors.New("link does not belong to this user")
)

type ILinkUsecase interface {
	AddLink(ctx context.Context, userID int64, req dto.AddLinkRequest) (dto.LinkResponse, error)
	GetLink(ctx context.Context, userID, linkID int64) (dto.LinkResponse, error)
	ListLinks(ctx context.Context, userID int64, companyID int64) ([]dto.LinkResponse, error)
	RefreshLink(ctx context.Context, userID, linkID int64) (dto.LinkResponse, error)
	RefreshAll(ctx context.Context, concurrency int) dto.RefreshResponse
	DeleteLink(ctx context.Context, userID, linkID int64) error
}

type linkUsecase struct {
	linkRepo     repository.ILink
	registry     repository.IExtractorRegistry
	metricsCache *cache.MetricsCache
	mondaySync   IMondaySync
}

// NewLinkUsecase wires the link flow. mondaySync may be nil when the
// Monday.com integration is not configured.
func NewLinkUsecase(linkRepo repository.ILink, registry repository.IExtractorRegistry, metricsCache *cache.MetricsCache, mondaySync IMondaySync) ILinkUsecase {
	return &linkUsecase{
		linkRepo:     linkRepo,
		registry:     registry,
		metricsCache: metricsCache,
		mondaySync:   mondaySync,
	}
}

// AddLink classifies the URL, rejects duplicates by canonical form, extracts
// metrics once and persists everything. Extraction trouble is reported as a
// warning on the response; the link itself is always saved.
func (u *linkUsecase) AddLink(ctx context.Context, userID int64, req dto.AddLinkRequest) (dto.LinkResponse, error) {
	canonical, platform, err := parser.Classify(req.URL)
	if err != nil {
		return dto.LinkResponse{}, err
	}
	if req.Platform != "" {
		requested, ok := model.ParsePlatform(req.Platform)
		if !ok {
			return dto.LinkResponse{}, fmt.Errorf("%w: %q", parser.ErrUnsupportedPlatform, req.Platform)
		}
		if requested != platform {
			return dto.LinkResponse{}, fmt.Errorf("%w: url is %s, not %s", parser.ErrInvalidURL, platform, requested)
		}
	}

	if existing, err := u.linkRepo.GetByCanonicalURL(ctx, canonical); err == nil {
		if existing.IsActive {
			return dto.LinkResponse{Link: existing}, ErrLinkExists
		}
		// The row survives soft delete and canonical_url is unique, so a
		// re-added URL revives its old row instead of inserting.
		link, err := u.linkRepo.Reactivate(ctx, existing.ID, userID, req.CompanyID, req.URL)
		if err != nil {
			return dto.LinkResponse{}, err
		}
		resp := dto.LinkResponse{Link: link}
		resp.Metrics, resp.Warning = u.extractAndStore(ctx, &link)
		resp.Link = link
		return resp, nil
	}

	link, err := u.linkRepo.Create(ctx, model.Link{
		URL:          req.URL,
		CanonicalURL: canonical,
		Platform:     platform,
		UserID:       userID,
		CompanyID:    req.CompanyID,
	})
	if err != nil {
		return dto.LinkResponse{}, err
	}

	resp := dto.LinkResponse{Link: link}
	metrics, warn := u.extractAndStore(ctx, &link)
	resp.Link = link
	resp.Metrics = metrics
	resp.Warning = warn
	return resp, nil
}

// extractAndStore runs extraction for a link and persists the outcome.
// It returns the stored metrics (nil if extraction produced nothing) and a
// human-readable warning for soft failures.
func (u *linkUsecase) extractAndStore(ctx context.Context, link *model.Link) (*model.LinkMetrics, string) {
	res, ok := u.metricsCache.Get(ctx, link.CanonicalURL)
	if !ok {
		var err error
		res, err = u.registry.Parse(ctx, link.CanonicalURL, string(link.Platform))
		if err != nil {
			logger.GetLogger().WithField("linkId", link.ID).WithField("error", err).Warn("metrics extraction failed")
			return nil, err.Error()
		}
		u.metricsCache.Set(ctx, link.CanonicalURL, res)
	}

	if res.Title != "" && res.Title != link.Title {
		if err := u.linkRepo.UpdateTitle(ctx, link.ID, res.Title); err == nil {
			link.Title = res.Title
		}
	}

	stored, err := u.linkRepo.UpsertMetrics(ctx, link.ID, res)
	if err != nil {
		logger.GetLogger().WithField("linkId", link.ID).WithField("error", err).Error("Error while storing metrics")
		return nil, "metrics could not be stored"
	}

	if u.mondaySync != nil {
		if err := u.mondaySync.SyncLink(ctx, *link, stored); err != nil {
			logger.GetLogger().WithField("linkId", link.ID).WithField("error", err).Warn("monday sync failed")
		}
	}
	return &stored, res.Error
}

func (u *linkUsecase) GetLink(ctx context.Context, userID, linkID int64) (dto.LinkResponse, error) {
	link, err := u.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.LinkResponse{}, ErrLinkNotFound
		}
		return dto.LinkResponse{}, err
	}
	if link.UserID != userID {
		return dto.LinkResponse{}, ErrNotOwner
	}
	resp := dto.LinkResponse{Link: link}
	if m, err := u.linkRepo.GetMetrics(ctx, linkID); err == nil {
		resp.Metrics = &m
	}
	return resp, nil
}

func (u *linkUsecase) ListLinks(ctx context.Context, userID int64, companyID int64) ([]dto.LinkResponse, error) {
	var links []model.Link
	var err error
	if companyID > 0 {
		links, err = u.linkRepo.ListByCompany(ctx, companyID)
	} else {
		links, err = u.linkRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.LinkResponse, 0, len(links))
	for _, l := range links {
		resp := dto.LinkResponse{Link: l}
		if m, err := u.linkRepo.GetMetrics(ctx, l.ID); err == nil {
			resp.Metrics = &m
		}
		out = append(out, resp)
	}
	return out, nil
}

func (u *linkUsecase) RefreshLink(ctx context.Context, userID, linkID int64) (dto.LinkResponse, error) {
	link, err := u.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.LinkResponse{}, ErrLinkNotFound
		}
		return dto.LinkResponse{}, err
	}
	if link.UserID != userID {
		return dto.LinkResponse{}, ErrNotOwner
	}

	// A manual refresh should hit the provider, not yesterday's cache.
	u.metricsCache.Invalidate(ctx, link.CanonicalURL)

	resp := dto.LinkResponse{}
	resp.Metrics, resp.Warning = u.extractAndStore(ctx, &link)
	resp.Link = link
	return resp, nil
}

// RefreshAll re-extracts every active link with bounded concurrency. It is
// called by the background refresher and by the bulk refresh endpoint.
func (u *linkUsecase) RefreshAll(ctx context.Context, concurrency int) dto.RefreshResponse {
	if concurrency <= 0 {
		concurrency = 3
	}
	links, err := u.linkRepo.ListActive(ctx)
	if err != nil {
		return dto.RefreshResponse{Errors: []string{err.Error()}}
	}

	type outcome struct {
		warn string
		ok   bool
	}
	results := make([]outcome, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range links {
		i := i
		g.Go(func() error {
			link := links[i]
			u.metricsCache.Invalidate(gctx, link.CanonicalURL)
			_, warn := u.extractAndStore(gctx, &link)
			results[i] = outcome{warn: warn, ok: warn == ""}
			return nil
		})
	}
	_ = g.Wait()

	var resp dto.RefreshResponse
	for i, r := range results {
		if r.ok {
			resp.Refreshed++
			continue
		}
		resp.Failed++
		resp.Errors = append(resp.Errors, fmt.Sprintf("link %d: %s", links[i].ID, r.warn))
	}
	return resp
}

func (u *linkUsecase) DeleteLink(ctx context.Context, userID, linkID int64) error {
	link, err := u.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLinkNotFound
		}
		return err
	}
	if link.UserID != userID {
		return ErrNotOwner
	}
	u.metricsCache.Invalidate(ctx, link.CanonicalURL)
	if err := u.linkRepo.Delete(ctx, linkID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLinkNotFound
		}
		return err
	}
	return nil
}
