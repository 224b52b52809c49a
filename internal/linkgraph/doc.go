// Package linkgraph stores directed, counted links between notes and ranks
// them with a weighted PageRank. The ranks feed the initial ease of notes
// that have never been reviewed.
package linkgraph
