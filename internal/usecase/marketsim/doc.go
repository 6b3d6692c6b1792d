// Package marketsim contains the periodic background tasks that drive the
// toy market: the price updater, the news generator and the dividend payer.
// Each task runs its own ticker loop until its context is cancelled,
// finishes the tick in flight, and treats per-tick failures as log-and-
// continue, never as a reason to stop.
package marketsim
