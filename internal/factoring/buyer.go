package factoring

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/schema"
	"github.com/wippyai/ledger-types/template"
)

const RegisteredBuyerTemplateID = "Factoring:Registry:RegisteredBuyer"

// RegisteredBuyer admits a buyer to invoice auctions run by an operator.
//
// CreditLimit distinguishes three states: None when the buyer has not been
// assessed, Some(None) when the buyer has no limit, and Some(Some(x)) for a
// limit of x.
type RegisteredBuyer struct {
	CreditLimit codec.Optional[codec.Optional[codec.Decimal]]
	Operator    codec.Party
	Buyer       codec.Party
	Name        string
	Since       codec.Date
}

// Limit reports the buyer's credit limit. assessed is false when no
// assessment exists; limited is false for an unlimited buyer.
func (b RegisteredBuyer) Limit() (limit codec.Decimal, limited, assessed bool) {
	inner, assessed := b.CreditLimit.Get()
	if !assessed {
		return "", false, false
	}
	limit, limited = inner.Get()
	return limit, limited, true
}

var creditLimitCodec = codec.OptionalOf(codec.OptionalOf(codec.DecimalCodec))

var RegisteredBuyerCodec = codec.WithType(codec.Func(
	func(raw any) (RegisteredBuyer, error) {
		var b RegisteredBuyer
		obj, err := codec.Object(raw)
		if err != nil {
			return b, err
		}
		if b.Operator, err = codec.Field(obj, "operator", codec.PartyCodec); err != nil {
			return b, err
		}
		if b.Buyer, err = codec.Field(obj, "buyer", codec.PartyCodec); err != nil {
			return b, err
		}
		if b.Name, err = codec.Field(obj, "name", codec.TextCodec); err != nil {
			return b, err
		}
		if b.CreditLimit, err = codec.Field(obj, "creditLimit", creditLimitCodec); err != nil {
			return b, err
		}
		if b.Since, err = codec.Field(obj, "since", codec.DateCodec); err != nil {
			return b, err
		}
		return b, nil
	},
	func(b RegisteredBuyer) any {
		return map[string]any{
			"operator":    codec.PartyCodec.Encode(b.Operator),
			"buyer":       codec.PartyCodec.Encode(b.Buyer),
			"name":        b.Name,
			"creditLimit": creditLimitCodec.Encode(b.CreditLimit),
			"since":       codec.DateCodec.Encode(b.Since),
		}
	},
), func() wit.Type {
	return schema.Record("registered-buyer",
		schema.Field{Name: "operator", Codec: codec.PartyCodec},
		schema.Field{Name: "buyer", Codec: codec.PartyCodec},
		schema.Field{Name: "name", Codec: codec.TextCodec},
		schema.Field{Name: "credit-limit", Codec: creditLimitCodec},
		schema.Field{Name: "since", Codec: codec.DateCodec},
	)
})

// UpdateLimit is the argument of the UpdateLimit choice. An absent limit
// makes the buyer unlimited.
type UpdateLimit struct {
	Limit codec.Optional[codec.Decimal]
}

var optionalDecimal = codec.OptionalOf(codec.DecimalCodec)

var UpdateLimitCodec = codec.WithType(codec.Func(
	func(raw any) (UpdateLimit, error) {
		obj, err := codec.Object(raw)
		if err != nil {
			return UpdateLimit{}, err
		}
		limit, err := codec.Field(obj, "limit", optionalDecimal)
		return UpdateLimit{Limit: limit}, err
	},
	func(u UpdateLimit) any { return map[string]any{"limit": optionalDecimal.Encode(u.Limit)} },
), func() wit.Type {
	return schema.Record("update-limit", schema.Field{Name: "limit", Codec: optionalDecimal})
})

var (
	BuyerUpdateLimit = template.NewChoice[RegisteredBuyer, UpdateLimit, codec.ContractID[RegisteredBuyer], codec.Party](
		"UpdateLimit", UpdateLimitCodec, codec.ContractIDOf(RegisteredBuyerCodec))

	RegisteredBuyerTemplate = template.New(RegisteredBuyerTemplateID, RegisteredBuyerCodec, codec.PartyCodec,
		template.WithKey(func(b RegisteredBuyer) codec.Party { return b.Buyer }),
		template.WithSignatories[RegisteredBuyer, codec.Party](func(b RegisteredBuyer) []codec.Party {
			return []codec.Party{b.Operator}
		}),
		template.WithChoice(BuyerUpdateLimit),
	)
)

func init() {
	template.Register(RegisteredBuyerTemplate)
}
