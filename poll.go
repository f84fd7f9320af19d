package rubikit

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// prime fetches the pending backlog once and moves the cursor past it
// without dispatching anything.
func (b *Bot) prime(ctx context.Context) error {
	page, err := b.fetcher.GetUpdates(ctx, "", b.config.PollLimit)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, "prime updates")
	}

	if len(page.Updates) > 0 && page.NextOffsetID != "" {
		b.setCursor(page.NextOffsetID)
		b.config.Logger.Debug("offset initialized",
			"offset", page.NextOffsetID,
			"skipped", len(page.Updates))
	}
	return nil
}

// poll is the steady-state loop. Each update is dispatched on its own
// goroutine and the cursor advances once per page without waiting for them.
func (b *Bot) poll(ctx context.Context) error {
	// Handlers outlive a cancelled Run; the framework never cancels them.
	handlerCtx := context.WithoutCancel(ctx)

	for {
		page, err := b.fetcher.GetUpdates(ctx, b.Cursor(), b.config.PollLimit)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "get updates")
		}

		now := b.config.Clock.Now()
		for _, raw := range page.Updates {
			u, ok := b.decoder.decode(raw, now)
			if !ok {
				continue
			}
			if err := b.spawn(ctx, handlerCtx, u); err != nil {
				return err
			}
		}

		if page.NextOffsetID != "" {
			b.setCursor(page.NextOffsetID)
		}

		if err := b.sleep(ctx, b.config.PollInterval); err != nil {
			return err
		}
	}
}

// spawn dispatches u on a new goroutine. With MaxConcurrentDispatch set it
// first waits for a free slot.
func (b *Bot) spawn(ctx, handlerCtx context.Context, u *Update) error {
	if b.sem != nil {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		if b.sem != nil {
			defer b.sem.Release(1)
		}
		b.dispatch(handlerCtx, u)
	}()
	return nil
}

func (b *Bot) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := b.config.Clock.Timer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C():
		return nil
	}
}

// Wait blocks until every dispatched update has been handled.
// Call it after Run returns to drain in-flight handlers.
func (b *Bot) Wait() {
	b.inflight.Wait()
}
