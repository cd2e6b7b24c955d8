// Package events provides a small named event bus.
//
// A Bus tracks every listener registered through it, so the owner can drop
// all of its subscriptions in one call when it is torn down:
//
//	bus := events.NewBus("supervisor")
//	key := bus.Listen(events.TypeTick, func(e events.Event) { ... })
//	...
//	bus.Unlisten(key) // or bus.Clear()
//
// Listeners run synchronously in registration order on the goroutine that
// calls Dispatch, outside of the bus lock.
package events
