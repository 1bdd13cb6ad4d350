package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/otpkeeper/internal/client/session"
)

const clearScreen = "\033[H\033[2J"

// Watch redraws the code table every refresh interval until Enter is
// pressed or ctx is done.
func (a *App) Watch(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = a.reader.ReadString('\n')
		cancel()
	}()

	fmt.Fprintln(a.out, "Press Enter to stop.")
	a.session.Run(ctx, a.config.RefreshInterval, func(views []session.CodeView) {
		if a.interactive {
			fmt.Fprint(a.out, clearScreen)
			fmt.Fprintln(a.out, "Press Enter to stop.")
		}
		renderCodes(a.out, views)
	})

	select {
	case <-done:
	case <-parent.Done():
	}
	return nil
}
