package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	More(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Save(ctx context.Context, id string) error
	Unsave(ctx context.Context, id string) error
	Saved(ctx context.Context) error
	Add(ctx context.Context) error
	Sync(ctx context.Context) error
	Pending(ctx context.Context) error
	Clear(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the story CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	- help            — show available commands
//	- register        — create an account
//	- login           — authenticate
//	- logout          — drop the stored session
//	- list | l        — fetch the first page of stories
//	- more | m        — fetch the next page
//	- show <id>       — show a single story
//	- save <id>       — store a story for offline reading
//	- unsave <id>     — remove a story from offline storage
//	- saved           — list stories stored offline
//	- add             — submit a story (queued when offline)
//	- sync            — upload the pending queue now
//	- pending         — list queued submissions
//	- clear           — wipe offline stories and cached photos
//	- exit | quit     — leave the program
//
// Any errors returned by command handlers are reported here and the loop
// continues; a failed command never terminates the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("story %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, (m)ore, show <id>, save <id>, unsave <id>, saved, add, sync, pending, clear, register, login, logout, exit")
			if !a.isLoggedIn() {
				printlnFn("You are browsing as a guest; login to publish stories under your name")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "m", "more":
			err = a.More(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			err = a.Show(ctx, args[0])

		case "save":
			if len(args) == 0 {
				printlnFn("Usage: save <id>")
				continue
			}
			err = a.Save(ctx, args[0])

		case "unsave":
			if len(args) == 0 {
				printlnFn("Usage: unsave <id>")
				continue
			}
			err = a.Unsave(ctx, args[0])

		case "saved":
			err = a.Saved(ctx)

		case "add":
			err = a.Add(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "pending":
			err = a.Pending(ctx)

		case "clear":
			err = a.Clear(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
