package core

import "context"

// Context keys for interaction options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	commandKey        contextKey = "command"
)

// WithSuppressHeader marks the context so no header lines are printed.
// The MCP server relies on this to keep stdio clean for the protocol.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithCommand records the name of the command driving the interaction, for history tracking.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// commandFromContext returns the command name, "dashboard" when unset
func commandFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok && name != "" {
		return name
	}
	return "dashboard"
}

// ensureCommand records the command name unless a caller already set one.
func ensureCommand(ctx context.Context, command string) context.Context {
	if name, ok := ctx.Value(commandKey).(string); ok && name != "" {
		return ctx
	}
	return WithCommand(ctx, command)
}
