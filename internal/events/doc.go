// Package events publishes a ReviewEvent after each saved review. Handlers
// registered on the emitter log the review or count it. A failing handler
// never undoes the review.
package events
