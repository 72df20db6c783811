// Package model defines the shared data types used across locus: geometric
// primitives (points, bounding boxes, affine matrices) in document coordinate
// space, reconstructed logical lines, the searchable corpus, and search
// matches.
//
// Document coordinate space is the decoder's native space. The Y axis may
// increase upward (PDF) or downward (hOCR, images); nothing in this package
// assumes a direction. Conversion to rendered-surface pixels is the view
// package's job.
package model
