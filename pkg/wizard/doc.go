// Package wizard orchestrates the vendor registration flow: a four-step
// state machine over a single aggregate form-data map, with per-step
// validation gating, draft auto-save, attachment forwarding, and the
// submission lifecycle (Submitting, Submitted, Failed).
//
// The Controller is the sole writer of wizard state. Host surfaces interact
// exclusively through its exported operations and observe changes via
// registered observers; they never mutate state directly. Validation and
// attachment problems are returned as data and resolved where they occur,
// while persistence and submission failures are the only conditions that
// surface in the machine's status.
package wizard
