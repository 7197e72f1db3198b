package domain

// Merge resolves one warehouse from its defaults and up to two stored documents.
// Precedence: remote if present, else cached if present, else defaults. The chosen
// document overlays the defaults as a whole; the two documents are never combined.
func Merge(defaults Warehouse, cached, remote *WarehouseDocument) Warehouse {
	w := defaults
	switch {
	case remote != nil:
		remote.applyTo(&w)
	case cached != nil:
		cached.applyTo(&w)
	}
	w.ID = defaults.ID
	return w
}
