// Package driven defines the interfaces the core depends on: durable
// stores for credentials, the change cursor and posts, the Drive
// change source, and the HTML sanitiser. Adapters implement these
// interfaces; services consume them.
package driven
