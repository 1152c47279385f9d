package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"social-dashboard/domain/model"
	"social-dashboard/infrastructure/clients/scrapeninja"
	"social-dashboard/infrastructure/logger"
)

// Bounds for engagement-based view estimation.
const (
	minEstimatedViews = 1_000
	maxEstimatedViews = 10_000_000
)

var (
	igLikesRe    = regexp.MustCompile(`(\d+(?:,\d+)*)\s*likes`)
	igCommentsRe = regexp.MustCompile(`(\d+(?:,\d+)*)\s*comments`)
	igOwnerRe    = regexp.MustCompile(`-\s*([^:]+?)\s+on\s+`)
	igOwnerAltRe = regexp.MustCompile(`-\s*([^:]+):`)
	igCaptionRe  = regexp.MustCompile(`:\s*"([^"]+)"`)
	igViewsAnyRe = regexp.MustCompile(`"view_count":(\d+)`)
)

// InstagramExtractor scrapes public post pages through ScrapeNinja. There is
// no official metrics API, so it works down a ladder: RapidAPI-hosted
// ScrapeNinja, then a direct ScrapeNinja account, then placeholder metrics
// so a link never fails hard.
type InstagramExtractor struct {
	rapid  *scrapeninja.Client
	direct *scrapeninja.Client

	// engagementRate converts likes+comments into estimated views when the
	// page exposes no view count.
	engagementRate float64
}

// NewInstagramExtractor accepts either client as nil; a nil rung is skipped.
func NewInstagramExtractor(rapid, direct *scrapeninja.Client, engagementRate float64) *InstagramExtractor {
	if engagementRate <= 0 {
		engagementRate = 0.02
	}
	return &InstagramExtractor{rapid: rapid, direct: direct, engagementRate: engagementRate}
}

func (e *InstagramExtractor) Platform() model.Platform { return model.PlatformInstagram }

func (e *InstagramExtractor) ValidateURL(rawURL string) bool {
	return ValidateURL(model.PlatformInstagram, rawURL)
}

func (e *InstagramExtractor) Extract(ctx context.Context, rawURL string) (model.MetricsResult, error) {
	shortcode := ExtractID(model.PlatformInstagram, rawURL)
	if shortcode == "" {
		return model.MetricsResult{Platform: model.PlatformInstagram}, fmt.Errorf("%w: %s", ErrUnparseableID, rawURL)
	}

	for _, rung := range []struct {
		name   string
		client *scrapeninja.Client
	}{
		{"scrapeninja-rapidapi", e.rapid},
		{"scrapeninja-direct", e.direct},
	} {
		if rung.client == nil {
			continue
		}
		html, err := rung.client.Scrape(ctx, rawURL)
		if err != nil {
			logger.GetLogger().WithField("strategy", rung.name).Warn("instagram scrape failed")
			continue
		}
		res := e.parseHTML(html, shortcode)
		if hasUsableMetrics(res) {
			logger.GetLogger().WithField("strategy", rung.name).Info("instagram scrape succeeded")
			return res, nil
		}
	}

	// Last rung: canned conservative numbers so the link stays refreshable.
	logger.GetLogger().WithField("shortcode", shortcode).Info("instagram falling back to placeholder metrics")
	return placeholderInstagramMetrics(shortcode), nil
}

func hasUsableMetrics(r model.MetricsResult) bool {
	return model.CountValue(r.Views) > 0 ||
		model.CountValue(r.Likes) > 0 ||
		model.CountValue(r.Comments) > 0
}

// parseHTML pulls metrics out of a rendered post page: likes, comments,
// owner and caption from the og/meta description, views from the embedded
// JSON blobs, estimated from engagement when absent.
func (e *InstagramExtractor) parseHTML(html, shortcode string) model.MetricsResult {
	res := model.MetricsResult{
		Platform: model.PlatformInstagram,
		Owner:    "Unknown",
	}

	desc := metaDescription(html)
	if desc != "" {
		if g := igLikesRe.FindStringSubmatch(desc); g != nil {
			res.Likes = model.Count(ParseCount(g[1]))
		}
		if g := igCommentsRe.FindStringSubmatch(desc); g != nil {
			res.Comments = model.Count(ParseCount(g[1]))
		}
		if g := igOwnerRe.FindStringSubmatch(desc); g != nil {
			res.Owner = strings.TrimSpace(g[1])
		} else if g := igOwnerAltRe.FindStringSubmatch(desc); g != nil {
			res.Owner = strings.TrimSpace(g[1])
		}
		if g := igCaptionRe.FindStringSubmatch(desc); g != nil {
			res.Title = g[1]
			for _, h := range hashtagRe.FindAllStringSubmatch(g[1], -1) {
				res.Hashtags = append(res.Hashtags, h[1])
			}
		}
	}

	if v, ok := viewCountFromJSON(html, shortcode); ok {
		res.Views = model.Count(v)
	} else if model.CountValue(res.Likes) > 0 {
		res.Views = model.Count(e.estimateViews(model.CountValue(res.Likes), model.CountValue(res.Comments)))
		res.IsEstimated = true
	}
	return res
}

// metaDescription finds the description meta tag that carries the
// "<n> likes, <m> comments" summary Instagram renders for crawlers.
func metaDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var desc string
	doc.Find(`meta[property="og:description"], meta[name="description"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if c, ok := s.Attr("content"); ok && strings.Contains(c, "likes") && strings.Contains(c, "comments") {
			desc = c
			return false
		}
		return true
	})
	return desc
}

// viewCountFromJSON digs the view count out of the page's embedded state,
// preferring the entry tied to this post's shortcode.
func viewCountFromJSON(html, shortcode string) (int64, bool) {
	scoped := regexp.MustCompile(`"shortcode":"` + regexp.QuoteMeta(shortcode) + `"(?s).*?"view_count":(\d+|null)`)
	if g := scoped.FindStringSubmatch(html); g != nil && g[1] != "null" {
		if v, err := strconv.ParseInt(g[1], 10, 64); err == nil {
			return v, true
		}
	}
	for _, g := range igViewsAnyRe.FindAllStringSubmatch(html, -1) {
		if v, err := strconv.ParseInt(g[1], 10, 64); err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

// estimateViews assumes roughly 2% of viewers engage, then clamps the
// result to a plausible range.
func (e *InstagramExtractor) estimateViews(likes, comments int64) int64 {
	est := int64(float64(likes+comments) / e.engagementRate)
	if est < minEstimatedViews {
		return minEstimatedViews
	}
	if est > maxEstimatedViews {
		return maxEstimatedViews
	}
	return est
}

func placeholderInstagramMetrics(shortcode string) model.MetricsResult {
	return model.MetricsResult{
		Platform:    model.PlatformInstagram,
		Title:       "Instagram Post " + shortcode,
		Views:       model.Count(1000),
		Likes:       model.Count(100),
		Comments:    model.Count(10),
		Owner:       "Unknown",
		IsEstimated: true,
	}
}
