package leaderboard

import (
	"context"
	"fmt"
	"log"

	"github.com/lixenwraith/pinball/core"
	"github.com/lixenwraith/pinball/parameter"
)

// Source tells where a top list came from
type Source string

const (
	SourceOnline Source = "online"
	SourceLocal  Source = "local"
)

// Fallback records every score locally and mirrors it to a remote when one is set
type Fallback struct {
	remote Store // nil means local only
	local  *LocalStore
}

func NewFallback(remote Store, local *LocalStore) *Fallback {
	return &Fallback{remote: remote, local: local}
}

// Submit stores locally first, then remotely; the remote error is returned
func (f *Fallback) Submit(ctx context.Context, e Entry) error {
	e.Name = SanitizeName(e.Name)
	if err := ValidateScore(e.Score); err != nil {
		return err
	}
	if err := f.local.Submit(ctx, e); err != nil {
		log.Printf("[leaderboard] local save failed: %v", err)
	}
	if f.remote == nil {
		return nil
	}
	if err := f.remote.Submit(ctx, e); err != nil {
		return fmt.Errorf("saved locally: %w", err)
	}
	return nil
}

func (f *Fallback) Top(ctx context.Context, limit int) ([]Entry, error) {
	entries, _, err := f.TopWithSource(ctx, limit)
	return entries, err
}

// TopWithSource prefers the remote and falls back to the local store
func (f *Fallback) TopWithSource(ctx context.Context, limit int) ([]Entry, Source, error) {
	limit = ClampLimit(limit)
	if f.remote != nil {
		entries, err := f.remote.Top(ctx, limit)
		if err == nil {
			return entries, SourceOnline, nil
		}
		log.Printf("[leaderboard] remote top failed, using local: %v", err)
	}
	entries, err := f.local.Top(ctx, limit)
	return entries, SourceLocal, err
}

// SubmitAsync runs Submit then TopWithSource off the caller's goroutine
// done receives the submit error and the refreshed list
func (f *Fallback) SubmitAsync(e Entry, done func(submitErr error, top []Entry, src Source)) {
	core.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*parameter.ClientTimeout)
		defer cancel()

		submitErr := f.Submit(ctx, e)
		top, src, err := f.TopWithSource(ctx, parameter.TopDefault)
		if err != nil {
			log.Printf("[leaderboard] top failed: %v", err)
		}
		if done != nil {
			done(submitErr, top, src)
		}
	})
}
