package services

// AuthorizeOwner reports whether the authenticated caller may act on a
// resource owned by ownerID. Pure comparison, no side effects.
func AuthorizeOwner(callerID, ownerID uint64) bool {
	return callerID == ownerID
}
