// Package vault reads a directory of markdown notes into a
// domain.Collection and writes review schedules back into the notes.
//
// Card schedules live in an HTML comment after the question
// (<!--SR:!2023-09-06,4,270-->); note schedules live in the YAML
// front-matter keys sr-due, sr-interval and sr-ease.
package vault
