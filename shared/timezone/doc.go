// Package timezone keeps the restaurant's local time zone.
//
// Reservation dates are calendar dates in the restaurant's zone, so "today" must be
// computed there rather than in the server's zone:
//
//	today := timezone.Today()                  // "2025-06-01"
//	past := timezone.IsPastDate("2025-05-31")  // true
//
// The zone comes from APP_TIMEZONE (an IANA name such as "Europe/Berlin") and is loaded
// when the package is imported. An empty or unknown name falls back to UTC.
package timezone
