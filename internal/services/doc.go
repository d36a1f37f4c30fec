// Package services holds the shared error taxonomy for external
// collaborators and the clients that implement them (see the devtools
// subpackage).
//
// Extraction distinguishes transient per-cycle failures, which the scroll
// loader absorbs, from source connectivity loss, which must abort the run.
// The sentinel errors here are the markers that carry that distinction
// across package boundaries.
package services
