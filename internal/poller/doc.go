// Package poller implements the keep-alive polling loop.
//
// The loop:
//   - Pulls a snapshot from the open page every Interval, measured from the
//     start of each pass
//   - Writes non-empty snapshots through a SnapshotSink
//   - Reports every pass (success, empty, error) as an Event
//   - Survives any single failed pass and keeps its schedule
//
// Stop is cooperative: a pass already in flight completes, no further pass
// starts. Stopping never closes the browser session.
package poller
