// Package ledgertypes is a typed value codec and contract-metadata framework
// for ledger applications.
//
// Ledger streams deliver contract payloads, keys and choice results as
// untyped values. This module decodes them into Go types, encodes Go values
// back, and resolves the metadata of a contract template from the
// identifier carried by a raw value.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	ledgertypes/
//	├── errors/          Structured error types with path and kind
//	├── memo/            Compute-once accessors and write-once cells
//	├── codec/           Serializable[T], primitives, containers, ContractID[T]
//	├── schema/          WIT descriptions of codecs
//	├── template/        Templates, choices, registry, create events, exercise
//	├── internal/        In-memory ledger and sample factoring templates
//	└── cmd/inspect/     CLI and TUI over the registered templates
//
// # Quick Start
//
// Decode a payload whose template is only known at runtime:
//
//	raw, err := codec.ParseJSON(data)
//	if err != nil {
//		return err
//	}
//	d, err := template.Lookup(templateID)
//	if err != nil {
//		return err
//	}
//	payload, err := d.DecodePayload(raw)
//
// Exercise a choice with typed argument and result:
//
//	next, err := template.Exercise(ctx, submitter, factoring.InvoiceAccept, cid,
//		factoring.AcceptInvoice{Buyer: "Bank A"})
//
// # Errors
//
// Every failure is an *errors.Error carrying a Phase (decode, encode,
// registry, submit), a Kind and the Path from the root value:
//
//	[decode] element at payload.comments.0.text (caused by: [decode] shape_mismatch: expected text, got number)
//
// Use errors.Is with a Phase and Kind template to classify failures.
package ledgertypes
