// Package forms defines the vendor registration field catalog and the pure
// validation primitives built on top of it. Field-level checks map a raw
// string value to a Verdict carrying a machine-readable Reason; step-level
// checks aggregate the verdicts for one wizard section into a StepResult with
// a field-keyed error map. Both are deterministic and side-effect free so
// callers can run them on every keystroke or inside table tests without any
// UI scaffolding. Option enumerations (countries, categories, packaging
// types) are injected through Context rather than read from globals.
package forms
