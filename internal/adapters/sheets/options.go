package sheets

import (
	"google.golang.org/api/option"

	"github.com/okian/leetboard/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithSheetName sets the tab to read.
func WithSheetName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.sheetName = name
		}
	}
}

// WithRange sets the A1 column span read from the tab, e.g. "A:ZZ".
func WithRange(r string) Option {
	return func(c *Client) {
		if r != "" {
			c.cellRange = r
		}
	}
}

// WithCredentialsFile authenticates with a service account key file.
// A missing file falls back to application default credentials.
func WithCredentialsFile(path string) Option {
	return func(c *Client) { c.credentialsFile = path }
}

// WithCredentialsJSON authenticates with an inline service account key.
// It wins over WithCredentialsFile.
func WithCredentialsJSON(raw string) Option {
	return func(c *Client) { c.credentialsJSON = raw }
}

// WithClientOptions passes extra options to the Sheets service, e.g. an
// endpoint and option.WithoutAuthentication in tests.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) { c.clientOpts = append(c.clientOpts, opts...) }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}
