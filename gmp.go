// Package gmp scrapes a single web page listing IPO grey market premiums.
// It fetches the page, finds the table that pairs issue names with premium
// values, normalizes the values and saves the result as a JSON envelope.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/).
package gmp
