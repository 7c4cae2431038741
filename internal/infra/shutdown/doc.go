// Package shutdown provides graceful shutdown for Kyoto.
//
// A Handler collects cleanup hooks and runs them in reverse registration
// order once SIGINT/SIGTERM arrives or the parent context is cancelled:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	err := h.Wait(ctx)
package shutdown
