package usecase

import (
	"context"
	"sort"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
)

type IStatsUsecase interface {
	CompanyStats(ctx context.Context, companyID int64) (dto.CompanyStats, error)
	PlatformPerformance(ctx context.Context, userID int64) ([]dto.PlatformPerformance, error)
	EngagementReport(ctx context.Context, userID int64) ([]dto.EngagementRow, error)
}

type statsUsecase struct {
	linkRepo    repository.ILink
	companyRepo repository.ICompany
}

func NewStatsUsecase(linkRepo repository.ILink, companyRepo repository.ICompany) IStatsUsecase {
	return &statsUsecase{linkRepo: linkRepo, companyRepo: companyRepo}
}

func (u *statsUsecase) CompanyStats(ctx context.Context, companyID int64) (dto.CompanyStats, error) {
	company, err := u.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return dto.CompanyStats{}, err
	}
	links, err := u.linkRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return dto.CompanyStats{}, err
	}

	stats := dto.CompanyStats{CompanyID: company.ID, CompanyName: company.Name}
	perPlatform := map[string]*dto.PlatformPerformance{}
	for _, l := range links {
		stats.LinkCount++
		m, err := u.linkRepo.GetMetrics(ctx, l.ID)
		if err != nil {
			continue
		}
		stats.TotalViews += m.Views
		stats.TotalLikes += m.Likes
		stats.TotalComments += m.Comments

		p, ok := perPlatform[string(l.Platform)]
		if !ok {
			p = &dto.PlatformPerformance{Platform: string(l.Platform)}
			perPlatform[string(l.Platform)] = p
		}
		p.LinkCount++
		p.TotalViews += m.Views
		p.TotalLikes += m.Likes
		p.TotalComments += m.Comments
	}
	for _, platform := range model.Platforms() {
		if p, ok := perPlatform[string(platform)]; ok {
			stats.ByPlatform = append(stats.ByPlatform, *p)
		}
	}
	return stats, nil
}

func (u *statsUsecase) PlatformPerformance(ctx context.Context, userID int64) ([]dto.PlatformPerformance, error) {
	links, err := u.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	perPlatform := map[string]*dto.PlatformPerformance{}
	for _, l := range links {
		p, ok := perPlatform[string(l.Platform)]
		if !ok {
			p = &dto.PlatformPerformance{Platform: string(l.Platform)}
			perPlatform[string(l.Platform)] = p
		}
		p.LinkCount++
		m, err := u.linkRepo.GetMetrics(ctx, l.ID)
		if err != nil {
			continue
		}
		p.TotalViews += m.Views
		p.TotalLikes += m.Likes
		p.TotalComments += m.Comments
	}
	var out []dto.PlatformPerformance
	for _, platform := range model.Platforms() {
		if p, ok := perPlatform[string(platform)]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

// EngagementReport ranks a user's links by engagement rate (likes+comments
// over views).
func (u *statsUsecase) EngagementReport(ctx context.Context, userID int64) ([]dto.EngagementRow, error) {
	links, err := u.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var rows []dto.EngagementRow
	for _, l := range links {
		m, err := u.linkRepo.GetMetrics(ctx, l.ID)
		if err != nil {
			continue
		}
		row := dto.EngagementRow{
			LinkID:     l.ID,
			Title:      l.Title,
			Platform:   string(l.Platform),
			Views:      m.Views,
			Engagement: m.Likes + m.Comments,
		}
		if m.Views > 0 {
			row.EngagementRate = float64(row.Engagement) / float64(m.Views)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EngagementRate > rows[j].EngagementRate })
	return rows, nil
}
