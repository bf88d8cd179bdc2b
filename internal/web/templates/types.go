package templates

// IndexData feeds the upload form.
type IndexData struct {
	// MaxSize is the human-readable upload limit, e.g. "32 MiB".
	MaxSize     string
	DefaultName string
	// Excel preselects the Excel format instead of CSV.
	Excel bool
}
