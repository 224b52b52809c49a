// Package review ties the pieces together: it builds the deck trees, link
// graph and histograms from a loaded collection, runs flashcard review
// sessions and the note review queue, and persists each answer through a
// store.ScheduleStore.
//
// Nothing in this package is safe for concurrent use except Service, which
// serializes every call.
package review
