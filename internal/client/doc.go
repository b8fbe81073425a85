// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault command-line application.
//
// It builds the cobra command tree, loads configuration from the parsed
// flags, wires storages and services for one invocation and maps service
// errors to user-facing messages. Secrets are read through a Prompter and
// copied through a Clipboard so that tests can replace both.
package client
