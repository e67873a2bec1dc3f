// Package template describes ledger contract templates and the choices that
// can be exercised on them, and resolves templates by identifier at runtime.
//
// A Template bundles the payload codec of a contract type, the codec of its
// contract key and its choices. Every template carries an Archive choice.
// Choices hold a deferred reference to their template, so template and
// choice variables can refer to each other at package level:
//
//	var Invoice = template.New("Factoring:Invoice:Invoice", invoiceCodec, codec.NoKey(),
//		template.WithChoice(InvoiceAccept),
//	)
//
//	var InvoiceAccept = template.NewChoice[InvoicePayload, codec.Unit, codec.ContractID[InvoicePayload], codec.Unit](
//		"Accept", codec.UnitCodec, codec.ContractIDOf(invoiceCodec),
//	)
//
//	func init() { template.Register(Invoice) }
//
// Lookup resolves a Descriptor, the type-erased view of a template, from the
// identifier carried by a raw ledger value. Registering an identifier twice
// replaces the earlier descriptor.
//
// Exercise is the boundary to the ledger: it encodes and validates the
// argument, hands it to a Submitter and decodes the result.
package template
