package parser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"social-dashboard/domain/model"
	"social-dashboard/infrastructure/logger"
)

var hashtagRe = regexp.MustCompile(`#(\w+)`)

// YouTubeExtractor reads video statistics from the YouTube Data API v3.
type YouTubeExtractor struct {
	svc *youtube.Service
}

// NewYouTubeExtractor builds the extractor in API-key mode. Extra options
// are appended after the key so tests can point the client at a fake server.
func NewYouTubeExtractor(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: api key is not set")
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &YouTubeExtractor{svc: svc}, nil
}

func (e *YouTubeExtractor) Platform() model.Platform { return model.PlatformYouTube }

func (e *YouTubeExtractor) ValidateURL(rawURL string) bool {
	return ValidateURL(model.PlatformYouTube, rawURL)
}

func (e *YouTubeExtractor) Extract(ctx context.Context, rawURL string) (model.MetricsResult, error) {
	res := model.MetricsResult{Platform: model.PlatformYouTube}

	videoID := ExtractID(model.PlatformYouTube, rawURL)
	if videoID == "" {
		return res, fmt.Errorf("%w: %s", ErrUnparseableID, rawURL)
	}

	call := e.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).Id(videoID)
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return res, mapYouTubeError(err)
	}
	if len(resp.Items) == 0 {
		return res, fmt.Errorf("%w: video %s is private or deleted", ErrNotFound, videoID)
	}

	item := resp.Items[0]
	if item.Snippet != nil {
		res.Title = item.Snippet.Title
		res.Owner = item.Snippet.ChannelTitle
		res.CreatedTime = item.Snippet.PublishedAt
		for _, g := range hashtagRe.FindAllStringSubmatch(item.Snippet.Description, -1) {
			res.Hashtags = append(res.Hashtags, g[1])
		}
	}
	if item.Statistics != nil {
		res.Views = model.Count(int64(item.Statistics.ViewCount))
		res.Likes = model.Count(int64(item.Statistics.LikeCount))
		res.Comments = model.Count(int64(item.Statistics.CommentCount))
	} else {
		logger.GetLogger().WithField("videoId", videoID).Warn("video has no statistics block")
	}
	return res, nil
}

// mapYouTubeError separates quota exhaustion from a rejected key so the
// registry can report them differently.
func mapYouTubeError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 403:
			for _, e := range gerr.Errors {
				if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" || e.Reason == "rateLimitExceeded" {
					return fmt.Errorf("%w: %s", ErrQuotaExceeded, e.Reason)
				}
			}
			return fmt.Errorf("%w: http 403: %s", ErrInvalidAPIKey, gerr.Message)
		case 400:
			return fmt.Errorf("%w: http 400: %s", ErrInvalidAPIKey, gerr.Message)
		case 404:
			return fmt.Errorf("%w: %s", ErrNotFound, gerr.Message)
		}
		return fmt.Errorf("%w: http %s", ErrExtraction, strconv.Itoa(gerr.Code))
	}
	return wrapExtraction(err)
}
