package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// RandomUserAgent returns a rotating desktop browser UA for outbound lookups.
// Some oEmbed proxies answer bare Go clients with 403.
func RandomUserAgent() string { return stealth.RandomUserAgent() }

// IsRetryableStatus reports whether an upstream HTTP status is transient
// (429, 5xx). Used to label provider errors; nothing retries on it.
func IsRetryableStatus(code int) bool { return stealth.IsRetryableStatus(code) }
