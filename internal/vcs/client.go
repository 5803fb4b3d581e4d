package vcs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/cratebuilder/internal/logfields"
	"git.home.luguber.info/inful/cratebuilder/internal/retry"
)

// Spec describes a remote source to materialize locally. Commit and
// Branch are optional, mutually exclusive refinements of URL.
type Spec struct {
	URL    string
	Commit string
	Branch string
}

// Client fetches remote repositories into local checkout directories.
// Transient failures are retried under the configured policy.
type Client struct {
	policy retry.Policy
}

// NewClient returns a client with the default retry policy.
func NewClient() *Client { return &Client{policy: retry.DefaultPolicy()} }

// WithPolicy overrides the retry policy (fluent helper).
func (c *Client) WithPolicy(p retry.Policy) *Client { c.policy = p; return c }

// Fetch materializes the repository described by spec under dest and
// returns the commit hash the checkout ended up on. Any existing dest is
// replaced so the result always matches the requested source.
func (c *Client) Fetch(ctx context.Context, spec Spec, dest string) (string, error) {
	var commit string
	err := retry.Do(ctx, c.policy, IsPermanent, func() error {
		h, err := c.fetchOnce(ctx, spec, dest)
		if err != nil {
			return err
		}
		commit = h
		return nil
	})
	return commit, err
}

func (c *Client) fetchOnce(ctx context.Context, spec Spec, dest string) (string, error) {
	slog.Debug("Fetching remote source", logfields.URL(spec.URL), logfields.Path(dest))
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("remove stale checkout: %w", err)
	}

	opts := &git.CloneOptions{URL: spec.URL}
	if spec.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(spec.Branch)
		opts.SingleBranch = true
	}
	// A pinned commit may sit anywhere in history, so only branch and
	// tip checkouts can be shallow.
	if spec.Commit == "" {
		opts.Depth = 1
	}
	repository, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil && opts.Depth > 0 {
		// Not every transport serves shallow requests.
		slog.Debug("Shallow clone failed, retrying full", logfields.URL(spec.URL), logfields.Error(err))
		if rerr := os.RemoveAll(dest); rerr != nil {
			return "", fmt.Errorf("remove partial checkout: %w", rerr)
		}
		opts.Depth = 0
		repository, err = git.PlainCloneContext(ctx, dest, false, opts)
	}
	if err != nil {
		return "", classify("clone", spec.URL, err)
	}
	if spec.Commit != "" {
		wt, werr := repository.Worktree()
		if werr != nil {
			return "", fmt.Errorf("worktree: %w", werr)
		}
		if cerr := wt.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(spec.Commit)}); cerr != nil {
			return "", classify("checkout", spec.URL, cerr)
		}
	}
	ref, err := repository.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	slog.Debug("Checkout complete", logfields.URL(spec.URL), logfields.Commit(ref.Hash().String()), logfields.Path(dest))
	return ref.Hash().String(), nil
}
