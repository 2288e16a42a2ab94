// Package steamstore wraps the public Steam storefront endpoints used for
// cover lookup: store search, app details, and the static asset CDN.
//
// Search keeps only items of type "app". Details are decoded from the
// appdetails envelope keyed by app id; unsuccessful envelopes and non-2xx
// answers are reported as (nil, nil). Probe issues a HEAD request so callers
// can prefer the portrait library artwork when it exists.
package steamstore
