package config

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/rtectl/internal/bridge"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/frameset"
	"github.com/danmuck/rtectl/internal/lms"
	"github.com/danmuck/rtectl/internal/logging"
	"github.com/danmuck/rtectl/internal/transport/httpform"
)

func (c PlayerConfig) FramesetOptions() frameset.Options {
	opts := frameset.DefaultOptions()
	if c.ClearURL != "" {
		opts.ClearURL = c.ClearURL
	}
	opts.Retry = frameset.RetryPolicy{
		InitialDelay: c.Retry.Interval.Duration,
		Multiplier:   c.Retry.Multiplier,
		MaxDelay:     c.Retry.MaxInterval.Duration,
		MaxAttempts:  c.Retry.MaxAttempts,
	}
	return opts
}

func (c PlayerConfig) TransportConfig() httpform.Config {
	return httpform.Config{
		LMSAddress:   c.LMS,
		PostPath:     c.PostPath,
		PostFrame:    frameset.FrameHidden,
		Timeout:      c.Timeout.Duration,
		FetchContent: c.FetchContent,
	}
}

func (c PlayerConfig) BridgeOptions() bridge.Config {
	return bridge.Config{
		Name:        c.Name,
		Addr:        c.Bridge.Addr,
		CorsOrigins: c.Bridge.CorsOrigins,
		CallTimeout: c.Bridge.CallTimeout.Duration,
	}
}

func (c LMSConfig) ServerConfig() lms.Config {
	course := lms.Course{
		ID:     c.Course.ID,
		Review: c.Course.Review,
		Learner: lms.Learner{
			ID:   c.Course.LearnerID,
			Name: c.Course.LearnerName,
		},
		Activities: make([]lms.Activity, 0, len(c.Course.Activities)),
	}
	for _, act := range c.Course.Activities {
		course.Activities = append(course.Activities, lms.Activity{
			ID:          act.ID,
			Title:       act.Title,
			URL:         act.URL,
			RteRequired: act.RteRequired,
			LaunchData:  act.LaunchData,
			Version:     datamodel.Version(act.Version),
		})
	}
	return lms.Config{
		Name:        c.Name,
		Addr:        c.Addr,
		CorsOrigins: c.CorsOrigins,
		ContentDir:  c.ContentDir,
		Course:      course,
	}
}

// Logging resolves the [log] section. Unknown levels fall back to info.
func (c LogConfig) Logging() logging.Config {
	level, ok := logging.ParseLevel(c.Level)
	if !ok {
		level = zerolog.InfoLevel
	}
	return logging.Config{
		Level:     level,
		Timestamp: c.Timestamp,
		NoColor:   c.NoColor,
		Bypass:    c.JSON,
	}
}
