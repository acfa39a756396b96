// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rulebook keeps the client-side view of the backend's rulebooks.
//
// The Registry owns the list of known rulebook names and the current
// selection. Names only ever come from the backend's list operation; the
// selection is empty ("let the backend choose") until a refresh applies the
// default-selection policy, the user picks a name, or an upload confirms one.
//
// # Default selection
//
// After a successful refresh, and only while the selection is empty:
//
//  1. the first name containing the preferred substring (case-insensitive,
//     "rising_sun" unless configured otherwise)
//  2. otherwise the first name
//  3. otherwise nothing
package rulebook
