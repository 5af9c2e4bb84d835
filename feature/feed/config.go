package feed

// Config holds configuration for the feed source.
type Config struct {
	// URL is the location of the ICML XML feed.
	URL string `mapstructure:"url" default:"https://mobistore.by/integration/icml/icml.xml"`
	// TimeoutSeconds bounds the feed download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
