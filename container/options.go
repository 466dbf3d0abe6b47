package container

import "github.com/jonxfmt/jonx/internal/options"

type writerConfig struct {
	verifyChecksum bool
}

// WriterOption configures a Writer using the functional-option pattern
// (internal/options.Option).
type WriterOption = options.Option[*writerConfig]

// WithChecksumVerification sets the Writer's checksum flag (default true).
// Write does not read the flag and computes no fingerprint; the written
// bytes are the same either way. The schema fingerprint is computed by
// Open on the reader side (see WithReaderChecksumVerification).
func WithChecksumVerification(enabled bool) WriterOption {
	return options.NoError[*writerConfig](func(c *writerConfig) {
		c.verifyChecksum = enabled
	})
}

type readerConfig struct {
	verifyChecksum bool
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*readerConfig]

// WithReaderChecksumVerification controls whether Open computes the
// schema frame's xxhash fingerprint, exposed via Reader.SchemaChecksum
// for callers to compare across readers (default true; nothing internal
// consumes it). Skipping it trades that fingerprint for a marginally
// faster open on files the caller doesn't need to compare.
func WithReaderChecksumVerification(enabled bool) ReaderOption {
	return options.NoError[*readerConfig](func(c *readerConfig) {
		c.verifyChecksum = enabled
	})
}
