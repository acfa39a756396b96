// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the rulebook Q&A backend.
//
// The client issues the backend's remote operations and normalizes every
// failure into one of two error shapes:
//
//   - RemoteError: the backend answered with a non-2xx status
//   - TransportError: no usable response was obtained (connection refused,
//     context cancelled, undecodable body)
//
// Every call is single-shot. The client never retries, backs off, caches or
// deduplicates requests.
//
// # Usage
//
//	client := gateway.NewClient("http://127.0.0.1:8000")
//	names, err := client.ListRulebooks(ctx)
//	reply, err := client.SendChatMessage(ctx, "How does the Kami phase work?", names[0])
//	if err != nil {
//	    fmt.Println(gateway.Message(err))
//	}
package gateway
