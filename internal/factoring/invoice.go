package factoring

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/schema"
	"github.com/wippyai/ledger-types/template"
)

const InvoiceTemplateID = "Factoring:Invoice:Invoice"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusOpen     InvoiceStatus = "Open"
	StatusAccepted InvoiceStatus = "Accepted"
	StatusPaid     InvoiceStatus = "Paid"
)

var InvoiceStatusCodec = codec.Enum("invoice-status", StatusOpen, StatusAccepted, StatusPaid)

// Comment is a remark on an invoice with its replies.
type Comment struct {
	Author  codec.Party
	Text    string
	Replies []Comment
}

// CommentCodec decodes comment threads of any depth.
var CommentCodec = codec.LazyMemo(func() codec.Serializable[Comment] { return commentCodec })

var commentCodec codec.Serializable[Comment]

func init() {
	replies := codec.ListOf(CommentCodec)
	commentCodec = codec.WithType(codec.Func(
		func(raw any) (Comment, error) {
			var c Comment
			obj, err := codec.Object(raw)
			if err != nil {
				return c, err
			}
			if c.Author, err = codec.Field(obj, "author", codec.PartyCodec); err != nil {
				return c, err
			}
			if c.Text, err = codec.Field(obj, "text", codec.TextCodec); err != nil {
				return c, err
			}
			if c.Replies, err = codec.Field(obj, "replies", replies); err != nil {
				return c, err
			}
			return c, nil
		},
		func(c Comment) any {
			return map[string]any{
				"author":  codec.PartyCodec.Encode(c.Author),
				"text":    c.Text,
				"replies": replies.Encode(c.Replies),
			}
		},
	), func() wit.Type {
		return schema.Record("comment",
			schema.Field{Name: "author", Codec: codec.PartyCodec},
			schema.Field{Name: "text", Codec: codec.TextCodec},
			schema.Field{Name: "replies", Codec: codec.WithType(replies, func() wit.Type {
				return schema.List(schema.Ref("comment"))
			})},
		)
	})
}

// Invoice is the payload of an invoice contract.
type Invoice struct {
	Labels   codec.TextMap[string]
	Buyer    codec.Optional[codec.Party]
	Seller   codec.Party
	Number   string
	Amount   codec.Decimal
	Issued   codec.Time
	Due      codec.Date
	Status   InvoiceStatus
	Comments []Comment
}

// InvoiceKey identifies an invoice by seller and number. It is encoded as
// the tuple {"_1": seller, "_2": number}.
type InvoiceKey struct {
	Seller codec.Party
	Number string
}

func (k InvoiceKey) String() string {
	return codec.TupleString(codec.WrapTuple([]string{string(k.Seller), "/", k.Number}))
}

var (
	optionalParty = codec.OptionalOf(codec.PartyCodec)
	labelsCodec   = codec.TextMapOf(codec.TextCodec)
	commentsCodec = codec.ListOf(CommentCodec)
)

var InvoiceCodec = codec.WithType(codec.Func(decodeInvoice, encodeInvoice), func() wit.Type {
	return schema.Record("invoice",
		schema.Field{Name: "seller", Codec: codec.PartyCodec},
		schema.Field{Name: "buyer", Codec: optionalParty},
		schema.Field{Name: "number", Codec: codec.TextCodec},
		schema.Field{Name: "amount", Codec: codec.DecimalCodec},
		schema.Field{Name: "issued", Codec: codec.TimeCodec},
		schema.Field{Name: "due", Codec: codec.DateCodec},
		schema.Field{Name: "status", Codec: InvoiceStatusCodec},
		schema.Field{Name: "labels", Codec: labelsCodec},
		schema.Field{Name: "comments", Codec: codec.WithType(commentsCodec, func() wit.Type {
			return schema.List(schema.Ref("comment"))
		})},
	)
})

func decodeInvoice(raw any) (Invoice, error) {
	var inv Invoice
	obj, err := codec.Object(raw)
	if err != nil {
		return inv, err
	}
	if inv.Seller, err = codec.Field(obj, "seller", codec.PartyCodec); err != nil {
		return inv, err
	}
	if inv.Buyer, err = codec.Field(obj, "buyer", optionalParty); err != nil {
		return inv, err
	}
	if inv.Number, err = codec.Field(obj, "number", codec.TextCodec); err != nil {
		return inv, err
	}
	if inv.Amount, err = codec.Field(obj, "amount", codec.DecimalCodec); err != nil {
		return inv, err
	}
	if inv.Issued, err = codec.Field(obj, "issued", codec.TimeCodec); err != nil {
		return inv, err
	}
	if inv.Due, err = codec.Field(obj, "due", codec.DateCodec); err != nil {
		return inv, err
	}
	if inv.Status, err = codec.Field(obj, "status", InvoiceStatusCodec); err != nil {
		return inv, err
	}
	if inv.Labels, err = codec.Field(obj, "labels", labelsCodec); err != nil {
		return inv, err
	}
	if inv.Comments, err = codec.Field(obj, "comments", commentsCodec); err != nil {
		return inv, err
	}
	return inv, nil
}

func encodeInvoice(inv Invoice) any {
	return map[string]any{
		"seller":   codec.PartyCodec.Encode(inv.Seller),
		"buyer":    optionalParty.Encode(inv.Buyer),
		"number":   inv.Number,
		"amount":   codec.DecimalCodec.Encode(inv.Amount),
		"issued":   codec.TimeCodec.Encode(inv.Issued),
		"due":      codec.DateCodec.Encode(inv.Due),
		"status":   InvoiceStatusCodec.Encode(inv.Status),
		"labels":   labelsCodec.Encode(inv.Labels),
		"comments": commentsCodec.Encode(inv.Comments),
	}
}

var InvoiceKeyCodec = codec.WithType(codec.Func(
	func(raw any) (InvoiceKey, error) {
		var k InvoiceKey
		obj, err := codec.Object(raw)
		if err != nil {
			return k, err
		}
		if k.Seller, err = codec.Field(obj, "_1", codec.PartyCodec); err != nil {
			return k, err
		}
		if k.Number, err = codec.Field(obj, "_2", codec.TextCodec); err != nil {
			return k, err
		}
		return k, nil
	},
	func(k InvoiceKey) any {
		return codec.WrapTuple([]any{codec.PartyCodec.Encode(k.Seller), k.Number})
	},
), func() wit.Type {
	return schema.Tuple(schema.Describe(codec.PartyCodec), wit.String{})
})

// KeyOf returns the contract key of inv.
func KeyOf(inv Invoice) InvoiceKey {
	return InvoiceKey{Seller: inv.Seller, Number: inv.Number}
}

// AcceptInvoice is the argument of the Accept choice.
type AcceptInvoice struct {
	Buyer codec.Party
}

var AcceptInvoiceCodec = codec.WithType(codec.Func(
	func(raw any) (AcceptInvoice, error) {
		obj, err := codec.Object(raw)
		if err != nil {
			return AcceptInvoice{}, err
		}
		buyer, err := codec.Field(obj, "buyer", codec.PartyCodec)
		return AcceptInvoice{Buyer: buyer}, err
	},
	func(a AcceptInvoice) any { return map[string]any{"buyer": codec.PartyCodec.Encode(a.Buyer)} },
), func() wit.Type {
	return schema.Record("accept-invoice", schema.Field{Name: "buyer", Codec: codec.PartyCodec})
})

// SplitInvoice is the argument of the Split choice.
type SplitInvoice struct {
	Amounts []codec.Decimal
}

var splitAmounts = codec.ListOf(codec.DecimalCodec)

var SplitInvoiceCodec = codec.WithType(codec.Func(
	func(raw any) (SplitInvoice, error) {
		obj, err := codec.Object(raw)
		if err != nil {
			return SplitInvoice{}, err
		}
		amounts, err := codec.Field(obj, "amounts", splitAmounts)
		return SplitInvoice{Amounts: amounts}, err
	},
	func(s SplitInvoice) any { return map[string]any{"amounts": splitAmounts.Encode(s.Amounts)} },
), func() wit.Type {
	return schema.Record("split-invoice", schema.Field{Name: "amounts", Codec: splitAmounts})
})

var invoiceID = codec.ContractIDOf(InvoiceCodec)

var (
	InvoiceAccept = template.NewChoice[Invoice, AcceptInvoice, codec.ContractID[Invoice], InvoiceKey](
		"Accept", AcceptInvoiceCodec, invoiceID)
	InvoicePay = template.NewChoice[Invoice, codec.Unit, codec.ContractID[Invoice], InvoiceKey](
		"Pay", codec.UnitCodec, invoiceID)
	InvoiceComment = template.NewChoice[Invoice, Comment, codec.ContractID[Invoice], InvoiceKey](
		"AddComment", CommentCodec, invoiceID)
	InvoiceSplit = template.NewChoice[Invoice, SplitInvoice, []codec.ContractID[Invoice], InvoiceKey](
		"Split", SplitInvoiceCodec, codec.ListOf(invoiceID))
)

var InvoiceTemplate = template.New(InvoiceTemplateID, InvoiceCodec, InvoiceKeyCodec,
	template.WithKey(KeyOf),
	template.WithSignatories[Invoice, InvoiceKey](func(inv Invoice) []codec.Party {
		return []codec.Party{inv.Seller}
	}),
	template.WithChoice(InvoiceAccept),
	template.WithChoice(InvoicePay),
	template.WithChoice(InvoiceComment),
	template.WithChoice(InvoiceSplit),
)

func init() {
	template.Register(InvoiceTemplate)
}
