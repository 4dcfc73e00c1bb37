package entity

// Cursor marks a resumable position in the remote listing's lexicographic
// ordering. A nil *Cursor means start-of-sequence. Cursors are never
// persisted: they are reconstructed from the catalog's maximum stored name,
// or taken verbatim from operator input.
type Cursor struct {
	// From is the name the next listing fetch should start from. It is not
	// guaranteed to exist in the catalog when supplied explicitly.
	From string
}

// PageBatch is the result of translating one fetched listing page.
type PageBatch struct {
	// Names in the order they appear inside the listing container.
	Names []string
	// NextURL is the absolute URL of the following page, or empty when the
	// page carries no continuation affordance.
	NextURL string
}
