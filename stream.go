// Channel front-ends for pipeline-style consumers.
//
// Stream and StreamPair run the parsing loop on background goroutines
// and hand out owned record copies, so a worker pool can fan records
// out without thinking about buffer aliasing. Cancellation is handled
// between records via the context; the core reader itself never polls.
package readfx

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"
)

// streamBuffer is the channel depth used by Stream and StreamPair.
const streamBuffer = 64

// Pair is one mate pair emitted by StreamPair.
type Pair struct {
	R1, R2 *Record
}

// Stream opens path and yields owned records on a channel. The record
// channel is closed at end of input; exactly one value is then sent on
// the error channel (nil on clean end). Cancelling ctx stops the
// stream between records.
func Stream(ctx context.Context, path string, config Config) (<-chan *Record, <-chan error) {
	out := make(chan *Record, streamBuffer)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		r, err := Open(path, config)
		if err != nil {
			errc <- err
			return
		}
		defer r.Close()

		for {
			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				errc <- nil
				return
			}
			if err != nil {
				errc <- err
				return
			}
			select {
			case out <- rec:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return out, errc
}

// StreamPair opens two paths and yields positionally paired records.
// The two files are read concurrently; desynchronized end of input
// surfaces as ErrPairMismatch on the error channel. The pair channel
// is closed when reading stops for any reason.
func StreamPair(ctx context.Context, path1, path2 string, config Config) (<-chan Pair, <-chan error) {
	out := make(chan Pair, streamBuffer)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		g, ctx := errgroup.WithContext(ctx)
		ch1 := readAsync(ctx, g, path1, config)
		ch2 := readAsync(ctx, g, path2, config)

		g.Go(func() error {
			for {
				r1, ok1 := <-ch1
				r2, ok2 := <-ch2
				if !ok1 && !ok2 {
					return nil
				}
				if ok1 != ok2 {
					return ErrPairMismatch
				}
				select {
				case out <- Pair{R1: r1, R2: r2}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
		errc <- g.Wait()
	}()

	return out, errc
}

// readAsync spawns a reader goroutine in g that sends owned records on
// the returned channel and closes it at end of input. Errors propagate
// through the errgroup, cancelling the sibling reader.
func readAsync(ctx context.Context, g *errgroup.Group, path string, config Config) <-chan *Record {
	ch := make(chan *Record, streamBuffer)
	g.Go(func() error {
		defer close(ch)
		r, err := Open(path, config)
		if err != nil {
			return err
		}
		defer r.Close()

		for {
			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case ch <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	return ch
}
