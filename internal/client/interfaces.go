// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command named by args and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// Prompter reads secrets from the user.
type Prompter interface {
	// ReadSecret prints prompt and returns one line of input without the
	// trailing newline. Input is not echoed when it comes from a terminal.
	ReadSecret(prompt string) (string, error)
}

// Clipboard receives copied passwords.
type Clipboard interface {
	WriteAll(text string) error
}
