// Package gateway defines the request and response envelopes for the
// schema service's external API.
//
// The envelopes are transport-neutral: gateway/http binds them to REST
// routes, and any future transport (gRPC, message bus) reuses the same
// types and validation rules. Request validation here covers payload
// shape and size caps only; semantic validation of schema documents
// lives in the validator package.
package gateway
