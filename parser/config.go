package parser

import "github.com/sirupsen/logrus"

type config struct {
	scripting bool
	logger    *logrus.Logger
}

// Option configures a Parser or an HTMLTokenizer.
type Option func(*config)

// WithScripting sets the scripting flag. It decides whether noscript content
// is raw text (true) or markup (false). The default is false.
func WithScripting(scripting bool) Option {
	return func(c *config) {
		c.scripting = scripting
	}
}

// WithLogger sends diagnostics to l instead of the standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
