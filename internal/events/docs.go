// Package events defines the messages exchanged over the broker.
//
// Every message is an Envelope tagged with a Type and a Version. Payloads are
// validated against JSON schemas (github.com/xeipuuv/gojsonschema) before they
// are published and again when they are consumed; anything that fails is
// reported as ErrInvalidMessage.
//
// Routing keys have the form "<orderId>.queue", "<orderId>.notif" and
// "<orderId>.log". Topology lists the exchanges, queues and bindings.
package events
