package workbook

// Option applies a configuration option to a Book.
type Option func(*Book)

// WithPath sets the backing file path.
func WithPath(path string) Option {
	return func(b *Book) {
		if path != "" {
			b.path = path
		}
	}
}

// WithMaxRows sets the per-collection row cap.
func WithMaxRows(n int) Option {
	return func(b *Book) {
		if n > 0 {
			b.maxRows = n
		}
	}
}
