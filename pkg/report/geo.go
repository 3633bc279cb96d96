// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/oschwald/geoip2-golang"
)

// asnReader is the part of a [geoip2.Reader] used for ASN lookups.
type asnReader interface {
	ASN(ip net.IP) (*geoip2.ASN, error)
	Close() error
}

// GeoIP annotates addresses with their autonomous system
// using a MaxMind GeoLite2 ASN database.
type GeoIP struct {
	db asnReader
}

// OpenGeoIP opens the GeoLite2 ASN database at path.
func OpenGeoIP(path string) (*GeoIP, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ASN database %q: %w", path, err)
	}
	return &GeoIP{db: db}, nil
}

// ASN returns "AS<number> <organization>" for addr, or an empty
// string if the address is not in the database.
// A nil GeoIP never annotates.
func (g *GeoIP) ASN(addr netip.Addr) string {
	if g == nil || g.db == nil || !addr.IsValid() {
		return ""
	}
	rec, err := g.db.ASN(net.IP(addr.AsSlice()))
	if err != nil || rec == nil || rec.AutonomousSystemNumber == 0 {
		return ""
	}
	if rec.AutonomousSystemOrganization == "" {
		return fmt.Sprintf("AS%d", rec.AutonomousSystemNumber)
	}
	return fmt.Sprintf("AS%d %s", rec.AutonomousSystemNumber, rec.AutonomousSystemOrganization)
}

// Close closes the database.
func (g *GeoIP) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}
