// Package srs implements the scheduling algorithm: how a review response
// turns one schedule into the next, how due dates are load balanced, and how
// new items get their starting ease.
package srs
