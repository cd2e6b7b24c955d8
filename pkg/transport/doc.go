// Package transport defines the capability interfaces the connection
// supervisor uses to reach a robot over its two radio families.
//
// # Transport Families
//
// A robot is reachable over exactly one of:
//   - Classic: a paired radio link (RFCOMM serial profile). The transport is
//     asked to auto-connect by device name and reports the outcome through a
//     callback.
//   - Low energy: a GATT link. The transport keeps a list of currently
//     visible peripherals; the caller picks one and opens it.
//
// Both families hand back a Device. The radio resource behind a Device stays
// owned by the transport that produced it; a session only references it
// while bound and releases it with Close.
//
// Adaptors for real hardware live in the serial and ble sub-packages. The sim
// sub-package provides in-memory transports for tests and demos.
package transport
