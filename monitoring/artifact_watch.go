package monitoring

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ArtifactWatcher warns when the model artifact changes on disk. The served
// bundle is loaded once, so a change only takes effect after a restart.
type ArtifactWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	changes chan fsnotify.Op
}

func NewArtifactWatcher(path string, logger *zap.Logger) (*ArtifactWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// editors and deploy tools replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &ArtifactWatcher{
		path:    abs,
		watcher: watcher,
		logger:  logger.Named("artifact-watch"),
		changes: make(chan fsnotify.Op, 1),
	}, nil
}

// Changes delivers the most recent unconsumed change to the artifact.
func (w *ArtifactWatcher) Changes() <-chan fsnotify.Op {
	return w.changes
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *ArtifactWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Warn("Model artifact changed on disk; the loaded bundle stays in use until restart",
				zap.String("path", w.path),
				zap.String("op", event.Op.String()),
			)
			select {
			case w.changes <- event.Op:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Artifact watcher error", zap.Error(err))
		}
	}
}
