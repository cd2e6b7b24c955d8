//go:build tools

package tools

// Mocks are generated by an installed mockery binary from .mockery.yaml,
// so no tool import is tracked here. Run: mockery (from the module root).
