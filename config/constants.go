package config

import "time"

// Notification Constants
const (
	// ExcerptLimit is the maximum excerpt length in notification emails
	ExcerptLimit = 240

	// MaxPostLength is the character cap for social status posts
	MaxPostLength = 280

	// MailTimeout bounds a single SMTP delivery attempt
	MailTimeout = 15 * time.Second

	// SocialTimeout bounds the outbound social post request
	SocialTimeout = 10 * time.Second
)

// Import Constants
const (
	// ImportWorkerCount is the number of concurrent content extractors
	ImportWorkerCount = 5

	// ImportMaxItems caps how many feed items a single import pulls
	ImportMaxItems = 10

	// ExtractTimeout bounds readability extraction per item
	ExtractTimeout = 30 * time.Second
)

// Ledger Constants
const (
	// LedgerTTL is how long a dispatched transition key is remembered
	LedgerTTL = 24 * time.Hour
)

// DefaultTweetEndpoint is used when X_TWEET_ENDPOINT is unset
const DefaultTweetEndpoint = "https://api.x.com/2/tweets"
