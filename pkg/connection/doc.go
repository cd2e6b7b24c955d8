// Package connection supervises the link to a robot.
//
// A Supervisor owns a session.API and keeps trying to bind a device into it
// while none is connected. Every attempt probes both radio families:
//
//  1. The classic transport is asked to auto-connect by name. It answers
//     through a callback, possibly much later.
//  2. The low-energy transport is asked for visible peripherals matching the
//     configured descriptor. The first match is opened on its own goroutine.
//
// Results of one attempt land in a result cell. Results that are ready
// together are bound classic first. The session decides whether a bind is
// accepted; a rejected device is closed so the transport reclaims the radio.
//
// # Reconnect Monitor
//
// Init starts a Monitor that dispatches a tick on the supervisor's event bus
// every MonitorInterval, and makes one attempt right away. A tick while
// connected only refreshes the session keep-alive.
//
// # Lifecycle
//
//	UNINITIALIZED --Init--> MONITORING --CleanUp--> STOPPED
//
// CleanUp is terminal. It stops the monitor, cancels in-flight attempts,
// stops the session and clears the bus. Init and Connect after CleanUp do
// nothing.
package connection
