package watcher

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"noctopo/internal/metrics"
)

// PushFunc hands a series refresh to the panel
type PushFunc func([]metrics.Frame) metrics.HostMap

// ReadFeed decodes a feed file holding a JSON array of frames
func ReadFeed(path string) ([]metrics.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	var frames []metrics.Frame
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return frames, nil
}

// FeedLoader returns an onChange callback that pushes the feed file's
// frames. Unreadable or half-written files are logged and skipped; the
// next write retries.
func FeedLoader(path string, push PushFunc, logger *zap.Logger) func() {
	return func() {
		frames, err := ReadFeed(path)
		if err != nil {
			logger.Warn("skipping series feed", zap.String("path", path), zap.Error(err))
			return
		}
		hosts := push(frames)
		logger.Debug("series feed applied", zap.Int("frames", len(frames)), zap.Int("hosts", len(hosts)))
	}
}
