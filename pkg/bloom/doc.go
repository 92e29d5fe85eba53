// Package bloom implements the timed flower-map simulation.
//
// A Sim owns every piece of mutable state: the pool of unused land cells,
// the glyph garden, the headline queue and the set of headlines on screen.
// It is driven by a single caller that invokes Tick once per frame, so no
// locking is involved. Headlines arrive through Enqueue, typically after an
// asynchronous feed fetch has handed them back to the frame loop.
//
// Each Tick runs, in order:
//
//   - the spawn scheduler, which releases at most one flower birth whenever
//     the birth interval (duration / total) has elapsed;
//   - the rotation scheduler, which takes the next headline off the queue
//     every headline interval and hands it to Place;
//   - the lifecycle manager, which fades headlines in and out and prunes
//     the invisible ones.
//
// The result is a Frame: positioned draw commands in screen space that a
// renderer turns into pixels or terminal cells. Map-space anchors are kept
// as the source of truth and re-projected through the current Viewport on
// every frame, so a Resize takes effect immediately.
package bloom
