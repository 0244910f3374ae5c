// Package classifier assigns archived URLs to semantic categories.
// Classification is a pure pattern-matching pass over an ordered,
// immutable rule table compiled at startup.
package classifier
