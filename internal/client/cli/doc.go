// Package cli provides the interactive story command-line client.
//
// It wires configuration, the local story database, the remote API gateway,
// and an interactive REPL that supports online/offline operation. Typical
// flow: restore the persisted session, start a background connectivity
// watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Browse stories page by page, online with offline fallback
//   - Save stories (photo included) for offline reading
//   - Submit stories online, or queue them for background sync when offline
//   - Manual sync, pending-queue inspection, offline data wipe
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
