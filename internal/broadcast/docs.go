// Package broadcast fans order tracking snapshots out to live subscribers.
//
// The Broadcaster keeps an in-memory registry of subscribers per order and
// pushes a fresh snapshot on every Publish. External fan-out (message
// brokers) plugs in through the Sink interface. Publication is best-effort
// end to end: slow subscribers are pruned, failing sinks are logged and
// skipped, and a publish never fails its caller.
package broadcast
