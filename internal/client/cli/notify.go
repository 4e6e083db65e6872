package cli

import "context"

// TerminalNotifier renders upload notifications as terminal lines, the CLI
// stand-in for a desktop notification.
type TerminalNotifier struct{}

func (TerminalNotifier) Notify(ctx context.Context, title, body string) {
	printlnFn("[" + title + "] " + body)
}
