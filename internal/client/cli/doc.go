// Package cli provides the interactive CropCare command-line client.
//
// The App receives a loaded session store and a recommendation service and
// drives an interactive REPL on top of them. A background watcher pings the
// recommendation backend and flips the prompt between online and offline.
//
// Key features:
//   - Register / Login / Logout
//   - Show and update the farmer profile
//   - Crop recommendation from a soil sample
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
