// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"net"
)

// Resolver resolves responder addresses to host names.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

type resolver struct {
	*net.Resolver
}

// NewResolver returns a [Resolver] using the pure Go resolver.
func NewResolver() Resolver {
	return &resolver{
		Resolver: &net.Resolver{
			PreferGo: true,
		},
	}
}
