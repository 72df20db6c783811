// Package text reconstructs logical text lines from the stream of positioned
// fragments a document decoder emits.
//
// Decoders produce fragments in reading order (left-to-right within a visual
// row, rows top-to-bottom). The Reconstructor folds that stream into one line
// per visual row, merging bounding geometry as it goes. Fragments whose
// vertical positions differ by no more than a fixed tolerance are treated as
// the same row; the tolerance is a heuristic, not adaptive to font size, so
// documents with very tight line spacing may merge two real rows. That is an
// accepted approximation.
package text
