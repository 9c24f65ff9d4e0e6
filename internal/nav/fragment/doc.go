// Package fragment pulls the swappable part out of a fetched HTML page and
// prepares it for insertion.
package fragment
