// Package domain contains the core business entities of the blog
// publishing pipeline: posts, credentials, change events, and watch
// subscriptions. It has no dependencies on adapters or upstream APIs.
package domain
