// Package scan drives one lookup across every configured tracker.
//
// The Runner queries trackers in configuration order, pausing between
// consecutive trackers, and folds each tracker.Outcome into an Aggregate.
// With concurrency above one, queries fan out through an errgroup and each
// tracker is paced independently. Exports of raw responses happen only after
// every tracker has been queried.
package scan
