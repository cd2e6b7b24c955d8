package session

import "fmt"

// Command is a lifecycle command sent to the robot.
type Command uint8

const (
	// CommandStop halts motion.
	CommandStop Command = iota + 1

	// CommandReset returns the robot to its power-on state.
	CommandReset

	// CommandPing checks that the robot is still listening.
	CommandPing
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandStop:
		return "STOP"
	case CommandReset:
		return "RESET"
	case CommandPing:
		return "PING"
	default:
		return "UNKNOWN"
	}
}

// Encoder turns a Command into the bytes written to the device.
type Encoder interface {
	Encode(cmd Command) ([]byte, error)
}

// LineEncoder encodes each command as its name followed by a newline.
// It is used by the simulator and by bridges that speak a text protocol.
type LineEncoder struct{}

// Encode returns the newline-terminated command name.
func (LineEncoder) Encode(cmd Command) ([]byte, error) {
	switch cmd {
	case CommandStop, CommandReset, CommandPing:
		return []byte(cmd.String() + "\n"), nil
	default:
		return nil, fmt.Errorf("unknown command %d", cmd)
	}
}

// Compile-time interface satisfaction check.
var _ Encoder = LineEncoder{}
