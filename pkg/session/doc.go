// Package session holds the device session a connection supervisor binds
// robots into.
//
// The API interface is what the supervisor talks to. Session is the
// reference implementation: it owns at most one bound device, answers
// connectivity from the device's own link state, and forwards lifecycle
// commands through a pluggable Encoder.
//
// # Bind Policy
//
// A bind is a check-and-set. It succeeds only while no live device is bound;
// a bind arriving while one is live is rejected and the caller keeps
// ownership of the rejected handle. A previously bound device whose link
// dropped is closed and replaced.
//
// # Keep-Alive
//
// When monitoring is enabled the session pings the bound device every
// PingInterval. MaxFailures consecutive write failures mark the link lost:
// the device is closed, unbound, and TypeLinkLost is dispatched.
package session
