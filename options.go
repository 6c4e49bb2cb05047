package restsharp

import "golang.org/x/text/language"

// Option mutates deserializer configuration.
type Option func(d *Deserializer)

// WithRootElement returns an option setting the root element key.
func WithRootElement(name string) Option {
	return func(d *Deserializer) {
		d.RootElement = name
	}
}

// WithDateFormat returns an option setting an exact date layout.
func WithDateFormat(layout string) Option {
	return func(d *Deserializer) {
		d.DateFormat = layout
	}
}

// WithCulture returns an option setting the culture used for name variants
// and locale sensitive parsing.
func WithCulture(culture language.Tag) Option {
	return func(d *Deserializer) {
		d.Culture = culture
	}
}
