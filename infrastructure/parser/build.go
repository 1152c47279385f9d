package parser

import (
	"context"

	"social-dashboard/domain/model"
	"social-dashboard/infrastructure/clients/apify"
	"social-dashboard/infrastructure/clients/fbscraper"
	"social-dashboard/infrastructure/clients/scrapeninja"
	"social-dashboard/infrastructure/configuration"
	"social-dashboard/infrastructure/logger"
)

// BuildRegistry wires every platform extractor it has credentials for.
// A platform with missing or broken credentials is recorded as unavailable;
// the service still starts and serves the rest.
func BuildRegistry(ctx context.Context, cfg configuration.Parsers) *Registry {
	reg := NewRegistry()

	if cfg.YouTube.APIKey == "" {
		reg.RegisterFailure(model.PlatformYouTube, "YOUTUBE_API_KEY is not set")
	} else if yt, err := NewYouTubeExtractor(ctx, cfg.YouTube.APIKey); err != nil {
		reg.RegisterFailure(model.PlatformYouTube, err.Error())
	} else {
		reg.Register(yt)
	}

	if ap, err := apify.NewClient(cfg.Apify.Token); err != nil {
		reg.RegisterFailure(model.PlatformTikTok, err.Error())
	} else {
		tt := NewTikTokExtractor(ap)
		if cfg.Apify.ActorID != "" {
			tt.actorID = cfg.Apify.ActorID
		}
		reg.Register(tt)
	}

	var rapid, direct *scrapeninja.Client
	if c, err := scrapeninja.NewRapidAPIClient(cfg.ScrapeNinja.RapidAPIKey); err == nil {
		rapid = c
	}
	if c, err := scrapeninja.NewDirectClient(cfg.ScrapeNinja.APIKey); err == nil {
		direct = c
	}
	if rapid == nil && direct == nil {
		reg.RegisterFailure(model.PlatformInstagram, "neither RAPIDAPI_KEY nor SCRAPENINJA_API_KEY is set")
	} else {
		reg.Register(NewInstagramExtractor(rapid, direct, cfg.EngagementRate))
	}

	if fb, err := fbscraper.NewClient(cfg.Facebook.RapidAPIKey); err != nil {
		reg.RegisterFailure(model.PlatformFacebook, err.Error())
	} else {
		reg.Register(NewFacebookExtractor(fb))
	}

	for p, reason := range reg.Unavailable() {
		logger.GetLogger().WithField("platform", p).WithField("reason", reason).Warn("extractor disabled")
	}
	return reg
}
