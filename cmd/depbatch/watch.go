package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/logger"
)

// watchFiles runs fn, then runs it again whenever one of the files it last
// reported changes, until ctx is done. Changes within the debounce window
// trigger a single run. Errors from fn are logged and watching continues
// with the previous file set.
//
// Directories are watched rather than files so editors that replace a file
// on save are still noticed.
func watchFiles(ctx context.Context, log *logger.Logger, root string, debounce time.Duration, fn func() ([]string, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Internal(err)
	}
	defer w.Close()

	rootPath, err := filepath.Abs(root)
	if err != nil {
		return errors.InvalidInput("project file", err.Error())
	}
	fw := &fileWatch{watcher: w, files: map[string]bool{}, dirs: map[string]bool{}}
	if err := fw.update([]string{rootPath}); err != nil {
		return err
	}

	runOnce := func() {
		files, err := fn()
		if err != nil {
			log.Error("plan failed", logger.MergeWithError(logger.Fields("file", rootPath), err))
		}
		if len(files) == 0 {
			return
		}
		if err := fw.update(append(files, rootPath)); err != nil {
			log.Warn("cannot watch project files", logger.ErrorFields("watch", err))
		}
	}
	runOnce()
	log.Info("watching for changes", logger.Fields("files", len(fw.files)))

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !fw.files[filepath.Clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			log.Debug("project file changed", logger.Fields("file", ev.Name, "op", ev.Op.String()))
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", logger.ErrorFields("watch", err))
		case <-fire:
			runOnce()
		}
	}
}

// fileWatch tracks the watched files and the directories holding them.
type fileWatch struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
}

// update replaces the watched file set, adding and removing directory
// watches as needed.
func (fw *fileWatch) update(files []string) error {
	nextFiles := make(map[string]bool, len(files))
	nextDirs := make(map[string]bool)
	for _, f := range files {
		f = filepath.Clean(f)
		nextFiles[f] = true
		nextDirs[filepath.Dir(f)] = true
	}

	for dir := range nextDirs {
		if fw.dirs[dir] {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			return errors.InvalidInput("watch", err.Error()).WithDetail("dir", dir)
		}
	}
	for dir := range fw.dirs {
		if !nextDirs[dir] {
			_ = fw.watcher.Remove(dir)
		}
	}
	fw.files, fw.dirs = nextFiles, nextDirs
	return nil
}
