// Package render owns the rendered-surface model: an in-memory pixel surface
// per materialized page, the single-worker FIFO queue that serializes page
// materialization, and small drawing helpers decoders use to produce a draft
// raster of their text content.
//
// A page is materialized at most once per document session. The queue bounds
// resource usage to one in-flight materialization and serves requests in call
// order.
package render
