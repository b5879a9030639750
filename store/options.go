package store

import "github.com/sirupsen/logrus"

// storeOptions configures one NewStore call.
type storeOptions struct {
	log               *logrus.Entry
	decodeMessageBase64 bool
}

func defaultStoreOptions() storeOptions {
	return storeOptions{decodeMessageBase64: true}
}

// StoreOption configures NewStore.
type StoreOption func(*storeOptions)

// WithLogger installs the logrus entry that store open and close are logged
// through (at Info). Load failures are returned as errors, not logged. A nil
// entry is ignored.
func WithLogger(log *logrus.Entry) StoreOption {
	return func(o *storeOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMessageBase64Decoding toggles whether the message property column
// decodes its stored base64 payload before returning it (spec.md §9's open
// question; default true). Disable it to get the raw encoded text instead.
func WithMessageBase64Decoding(enabled bool) StoreOption {
	return func(o *storeOptions) {
		o.decodeMessageBase64 = enabled
	}
}
