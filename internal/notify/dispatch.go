package notify

import (
	"context"

	"github.com/AsimRizwan/Med-Rem/internal/scheduler"
)

// Dispatch delivers engine events until ctx is done or events is closed.
// onFire, when set, sees every notification with its delivery error.
func Dispatch(ctx context.Context, events <-chan scheduler.Event, d Deliverer, onFire func(Notification, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			n := FromEvent(ev)
			err := d.Send(ctx, n)
			if onFire != nil {
				onFire(n, err)
			}
		}
	}
}
