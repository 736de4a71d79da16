package input

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GitAdapter reads stylesheets from a local git checkout, versioned by the
// last commit that touched each file.
type GitAdapter struct {
	repoPath string
	dir      string
}

// NewGitAdapter creates a GitAdapter for the checkout at repoPath. Files are
// looked up under dir, relative to the repository root.
func NewGitAdapter(repoPath, dir string) *GitAdapter {
	return &GitAdapter{repoPath: repoPath, dir: dir}
}

// Name returns the adapter identifier.
func (a *GitAdapter) Name() string {
	return "git"
}

// Fetch reads the working-tree copy of the file and the short id of the
// most recent commit touching it.
func (a *GitAdapter) Fetch(ctx context.Context, name string) (*Asset, error) {
	repo, err := git.PlainOpen(a.repoPath)
	if err != nil {
		return nil, &AdapterError{
			Source:  "git",
			Message: "failed to open repository " + a.repoPath,
			Err:     err,
		}
	}

	repoRelPath := path.Join(filepath.ToSlash(a.dir), filepath.ToSlash(name))
	commitID, err := lastCommit(ctx, repo, repoRelPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(a.repoPath, filepath.FromSlash(repoRelPath)))
	if err != nil {
		return nil, &AdapterError{
			Source:  "git",
			Message: "failed to read " + repoRelPath,
			Err:     err,
		}
	}

	return &Asset{
		Path:    name,
		Version: commitID,
		Data:    data,
	}, nil
}

// lastCommit returns the 7-character id of the newest commit reachable from
// HEAD whose copy of file differs from its first parent's. The walk stops
// when ctx is done.
func lastCommit(ctx context.Context, repo *git.Repository, file string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return "", &AdapterError{
			Source:  "git",
			Message: "failed to read history of " + file,
			Err:     err,
		}
	}
	defer iter.Close()

	var found *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		touched, err := touches(c, file)
		if err != nil {
			return err
		}
		if touched {
			found = c
			return storer.ErrStop
		}
		return nil
	})
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return "", err
	}
	if err != nil {
		return "", &AdapterError{
			Source:  "git",
			Message: "failed to read history of " + file,
			Err:     err,
		}
	}
	if found == nil {
		return "", &AdapterError{
			Source:  "git",
			Message: fmt.Sprintf("no commit touches %s", file),
		}
	}

	return found.Hash.String()[:7], nil
}

// touches reports whether c adds, changes or removes file.
func touches(c *object.Commit, file string) (bool, error) {
	hash, ok, err := blobHash(c, file)
	if err != nil {
		return false, err
	}
	if c.NumParents() == 0 {
		return ok, nil
	}

	parent, err := c.Parent(0)
	if err != nil {
		return false, err
	}
	parentHash, parentOK, err := blobHash(parent, file)
	if err != nil {
		return false, err
	}
	return ok != parentOK || hash != parentHash, nil
}

func blobHash(c *object.Commit, file string) (plumbing.Hash, bool, error) {
	f, err := c.File(file)
	if errors.Is(err, object.ErrFileNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, err
	}
	return f.Hash, true, nil
}
