//go:build unix

package ansi

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kungfusheep/vgraph"
	"golang.org/x/sys/unix"
)

func winsize(fd int) (vgraph.Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return vgraph.Size{}, err
	}
	return vgraph.Size{Width: int(ws.Col), Height: int(ws.Row)}, nil
}

// WatchResize delivers the new terminal size on every SIGWINCH until ctx is
// done. Sizes coalesce: a slow reader only sees the latest.
func WatchResize(ctx context.Context, fd int) <-chan vgraph.Size {
	out := make(chan vgraph.Size, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sig)
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				s, err := winsize(fd)
				if err != nil {
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- s
			}
		}
	}()
	return out
}
