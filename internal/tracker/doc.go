// Package tracker queries a single private tracker API for the releases of a
// TMDb title and turns the response into an Outcome.
//
// The Client issues one authenticated GET per tracker, decodes the
// UNIT3D-style {"data":[{"attributes":{...}}]} envelope, and then either
// narrows the listings with a ^-separated free-text query (Filter) or, when
// no query is active, reports which release-format categories the tracker is
// missing (Check). Every failure mode is expressed as an Outcome status
// rather than an error so callers can keep iterating over other trackers.
package tracker
