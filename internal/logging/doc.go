// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the structured logger shared by quinn components.
//
// Logs are written as JSON to a size-rotated file so they never interleave
// with the terminal UI. Components tag their entries with a "component"
// field:
//
//	log, err := logging.New(cfg.Logging, verbose)
//	if err != nil {
//	    return err
//	}
//	defer log.Sync()
//	client := gateway.NewClientWithConfig(gateway.ClientConfig{
//	    BaseURL: cfg.Backend.URL,
//	    Logger:  log.With(zap.String("component", "gateway")),
//	})
package logging
