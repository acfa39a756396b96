// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the quinn command line.
//
// Running quinn with no subcommand starts the terminal UI. Subcommands
// cover scripted and line-mode use:
//
//	quinn ask "How does the Kami phase resolve?"
//	quinn chat
//	quinn rulebooks list
//	quinn rulebooks upload ./Rising_Sun_Rules.pdf
//	quinn rulebooks select rising_sun.pdf
//	quinn status
//	quinn config show | get <key> | set <key> <value> | path
//	quinn version
//
// Global flags: --config, --backend, --rulebook, --verbose.
//
// Commands return errors instead of printing them; Execute displays the
// error once and maps it to an exit code.
package cli
