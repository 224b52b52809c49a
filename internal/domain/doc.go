// Package domain contains the core entities of the review system: the items
// that get scheduled (flashcards and whole notes), their schedule records and
// the review responses that drive rescheduling. It is independent of any
// storage or delivery mechanism.
package domain
