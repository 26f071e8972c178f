// Package task provides background task processing: a persistent task store,
// a bounded in-memory queue drained by a fixed worker pool, and recovery of
// unfinished tasks on startup. Card generation from uploaded text runs here
// so the upload endpoint can return immediately.
package task
