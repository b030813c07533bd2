package scan

import (
	"io/fs"
	"path/filepath"

	"golang.org/x/xerrors"
)

// Walk enumerates the tree under root and pushes every entry to the queue,
// files and directories alike. Type filtering happens in the workers, the
// walker only discovers paths.
//
// Subtrees that cannot be read are skipped and traversal continues.
// An error is returned only when the root itself is inaccessible; the
// caller is expected to close the queue regardless of the outcome.
func Walk(root string, queue *TaskQueue) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return xerrors.Errorf("walk %s: %w", root, err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		queue.Push(path)
		return nil
	})
}
