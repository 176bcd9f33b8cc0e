// Package gibber classifies text as natural English or gibberish.
//
// Classification blends dictionary lookups against an embedded word corpus
// with n-gram frequency analysis and character-level statistics, producing
// a weighted score that is compared against a sensitivity-dependent,
// length-adjusted threshold. An optional second-stage classifier (a local
// transformer model or a remote judge) can be attached to catch
// grammatical word salad that the statistics accept.
//
// The package-level IsGibberish is the quick entry point:
//
//	if gibber.IsGibberish(candidate, gibber.Medium) {
//		// discard candidate plaintext
//	}
//
// Construct a Detector to substitute corpora, tune the engine constants,
// or attach enhanced detection. Detectors are immutable after construction
// and safe for concurrent use.
package gibber
