//go:build !unix

package ansi

import (
	"context"
	"errors"

	"github.com/kungfusheep/vgraph"
)

func winsize(int) (vgraph.Size, error) {
	return vgraph.Size{}, errors.ErrUnsupported
}

// WatchResize is not supported on this platform; the channel closes when
// ctx is done.
func WatchResize(ctx context.Context, fd int) <-chan vgraph.Size {
	out := make(chan vgraph.Size)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out
}
