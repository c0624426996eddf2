// Package market defines the data extracted from a sportsbook page.
//
// Values are produced fresh on every extraction pass and never mutated
// afterwards, so they can be handed between goroutines without locking.
package market
