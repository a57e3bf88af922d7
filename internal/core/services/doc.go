// Package services contains the core application logic: the sync
// orchestrator that turns Drive change notifications into published
// posts, the content exporter, the read-side post service, and the
// periodic watch renewer.
package services
