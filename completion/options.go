package completion

// Options carry the per-request knobs of a suggestion call.
type Options struct {
	matcher  Matcher
	maxItems int
}

// Option adjusts one request.
type Option func(*Options)

// WithMatcher swaps the filtering strategy for this request.
func WithMatcher(m Matcher) Option {
	return func(o *Options) {
		if m != nil {
			o.matcher = m
		}
	}
}

// WithMaxItems caps the number of suggestions returned. Zero means no cap.
func WithMaxItems(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.maxItems = n
		}
	}
}

// NewOptions applies opts over the defaults: prefix matching, no cap.
func NewOptions(opts ...Option) Options {
	o := Options{matcher: PrefixMatcher}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Matcher returns the strategy for this request.
func (o Options) Matcher() Matcher { return o.matcher }

// Cap trims a suggestion list to the configured maximum.
func (o Options) Cap(list []string) []string {
	if o.maxItems > 0 && len(list) > o.maxItems {
		return list[:o.maxItems]
	}
	return list
}
