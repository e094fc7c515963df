// Package attach owns the wizard's ephemeral file attachments: credential
// documents and product images. Files are never uploaded by this module;
// each accepted candidate is held as metadata plus an opaque preview handle
// that must be released exactly once, either when the file is removed or when
// the wizard tears down. Admission is policy driven (count, per-file size,
// allowed types) with one deliberate asymmetry: size and type violations
// reject individual files, while a count overflow rejects the whole incoming
// batch instead of partially accepting it.
package attach
