// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the vault.
//
// A Validator inspects a value and may be scoped to named fields, so that a
// caller holding only a site name can validate just that field of a
// credential.
package validators

import "context"

// Validator validates value. When fields are given, only those fields are
// checked; an unknown field name yields [ErrUnknownField] and an unsupported
// value type yields [ErrUnsupportedType].
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
