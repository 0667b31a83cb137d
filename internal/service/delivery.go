package service

import (
	"context"
	"log/slog"
)

// Deliverer resolves an envelope to the set of live connections and emits
// one copy to each of them. Delivery is best-effort: an unresolved recipient
// or a dead handle is absorbed, never surfaced to the sending transport.
type Deliverer struct {
	presence PresenceStoreIn
	emitter  EmitterIn
}

func NewDeliverer(presence PresenceStoreIn, emitter EmitterIn) *Deliverer {
	return &Deliverer{
		presence: presence,
		emitter:  emitter,
	}
}

// Emit fans the envelope out to every active device of the recipient and
// mirrors it to the sender's other devices, skipping the originating handle.
// Targets are enumerated from the presence snapshot at emission time.
func (d *Deliverer) Emit(ctx context.Context, env Envelope, origin string) {
	payload := env.Payload()

	if env.IsBroadcast() {
		if err := d.emitter.Broadcast(ctx, payload); err != nil {
			slog.Error("Failed to broadcast event", "error", err)
		}
		return
	}

	recipient := env.Recipient()
	if recipient == nil {
		return
	}

	handles, err := d.presence.ActiveHandles(ctx, recipient.ID)
	if err != nil {
		slog.Error("Failed to resolve recipient handles", "user_id", recipient.ID, "error", err)
		handles = nil
	}

	for _, handle := range handles {
		if err := d.emitter.EmitTo(ctx, handle, payload); err != nil {
			slog.Error("Failed to emit event", "handle", handle, "error", err)
		}
	}

	sender := env.Sender()
	if sender == nil || sender.ID == recipient.ID {
		return
	}

	mirrors, err := d.presence.ActiveHandles(ctx, sender.ID)
	if err != nil {
		slog.Error("Failed to resolve sender handles", "user_id", sender.ID, "error", err)
		return
	}

	for _, handle := range mirrors {
		if handle == origin {
			continue
		}
		if err := d.emitter.EmitTo(ctx, handle, payload); err != nil {
			slog.Error("Failed to mirror event", "handle", handle, "error", err)
		}
	}
}
