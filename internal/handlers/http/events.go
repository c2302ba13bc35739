package http

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/services/fanout"
	"github.com/gofiber/fiber/v2"
)

// streamEvents relays a stream's realtime channel as server-sent events.
// Each frame carries the battle event JSON exactly as published.
func (h *Handler) streamEvents(c *fiber.Ctx) error {
	channel := h.broadcaster.ChannelFor(c.Params("id"))

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := h.transport.Subscribe(ctx, &fanout.SubscribeInput{Channel: channel})
	if err != nil {
		cancel()
		return h.writeError(c, err)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	serverDone := c.Context().Done()
	keepAlive := h.keepAlive
	logger := h.logger.With().Str("channel", channel).Logger()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		// Open the stream right away so proxies see headers
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case payload, ok := <-sub.Messages:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: battle\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					logger.Debug().Err(err).Msg("sse client went away")
					return
				}

			case <-ticker.C:
				w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case <-serverDone:
				return
			}
		}
	})

	return nil
}
