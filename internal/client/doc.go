// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires terminal UI flows, the encrypted credential store, the order
// orchestrator and background session upkeep into a single process
// lifecycle.
package client
