package cli

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/neunenak/typst/pkg/document"
)

// watchDebounce is how long a document must stay quiet before it is
// recompiled. Editors often write a file in several steps.
const watchDebounce = 150 * time.Millisecond

// watch recompiles documents matching patterns until ctx is done.
func watch(ctx context.Context, logger *log.Logger, patterns []string, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dirs := watchDirs(patterns)
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "err", err)
			continue
		}
		logger.Debug("watching directory", "dir", dir)
	}
	printInfo("Watching %d director%s, press Ctrl+C to stop", len(dirs), plural(len(dirs), "y", "ies"))

	isTarget := func(path string) bool {
		return document.Match(patterns, filepath.Clean(path))
	}
	err = watchLoop(ctx, w.Events, w.Errors, isTarget, watchDebounce, onChange, logger)
	if err == context.Canceled {
		return nil
	}
	return err
}

// watchDirs returns the directories to subscribe to. A literal path
// contributes its parent; a glob contributes its static base and, when it
// contains "**", every directory below it.
func watchDirs(patterns []string) []string {
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
		base = filepath.Clean(filepath.FromSlash(base))
		seen[base] = true

		if !strings.Contains(rest, "**") {
			continue
		}
		_ = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				seen[filepath.Clean(p)] = true
			}
			return nil
		})
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// watchLoop calls onChange for each target path once it has been quiet
// for debounce. It returns ctx.Err() when ctx is done, or nil when the
// event channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, isTarget func(string) bool, debounce time.Duration, onChange func(string), logger *log.Logger) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		clear(pending)
		for _, p := range paths {
			onChange(p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				flush()
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !isTarget(ev.Name) {
				continue
			}
			logger.Debug("document changed", "path", ev.Name, "op", ev.Op.String())
			pending[filepath.Clean(ev.Name)] = true
			timer.Reset(debounce)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			flush()
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
