package factoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/internal/ledgertest"
	"github.com/wippyai/ledger-types/schema"
	"github.com/wippyai/ledger-types/template"
)

var now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleInvoice() Invoice {
	return Invoice{
		Seller: "Seller Co",
		Number: "INV-7",
		Amount: "100.0",
		Issued: codec.TimeOf(now),
		Due:    "2024-08-01",
		Status: StatusOpen,
		Labels: codec.TextMap[string]{"currency": "EUR"},
		Comments: []Comment{
			{Author: "Seller Co", Text: "first", Replies: []Comment{
				{Author: "Operator", Text: "ok", Replies: []Comment{}},
			}},
		},
	}
}

func TestRegistered(t *testing.T) {
	d, err := template.Lookup(InvoiceTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Archive", "Accept", "Pay", "AddComment", "Split"}, d.ChoiceNames())

	d, err = template.Lookup(RegisteredBuyerTemplateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Archive", "UpdateLimit"}, d.ChoiceNames())
}

func TestChoiceBackReferences(t *testing.T) {
	assert.Same(t, InvoiceTemplate, InvoiceAccept.Template())
	assert.Same(t, InvoiceTemplate, InvoiceSplit.Template())
	assert.Same(t, RegisteredBuyerTemplate, BuyerUpdateLimit.Template())
}

func TestInvoice_RoundTrip(t *testing.T) {
	inv := sampleInvoice()
	data, err := codec.EncodeJSON[Invoice](InvoiceTemplate, inv)
	require.NoError(t, err)

	back, err := codec.DecodeJSON[Invoice](InvoiceTemplate, data)
	require.NoError(t, err)
	assert.Equal(t, inv, back)
}

func TestInvoice_DecodeErrors(t *testing.T) {
	raw := InvoiceTemplate.Encode(sampleInvoice()).(map[string]any)
	raw["status"] = "Lost"
	_, err := InvoiceTemplate.Decode(raw)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"status"}, e.Path)
	assert.Equal(t, errors.KindUnknownVariant, e.Innermost().Kind)

	raw = InvoiceTemplate.Encode(sampleInvoice()).(map[string]any)
	raw["comments"] = []any{map[string]any{"author": "A", "text": "t", "replies": []any{
		map[string]any{"author": "B", "text": 1.0, "replies": []any{}},
	}}}
	_, err = InvoiceTemplate.Decode(raw)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"comments", "0", "replies", "0", "text"}, e.Path)
}

func TestInvoiceKey(t *testing.T) {
	k := KeyOf(sampleInvoice())
	raw := InvoiceKeyCodec.Encode(k)
	assert.Equal(t, map[string]any{"_1": "Seller Co", "_2": "INV-7"}, raw)

	back, err := InvoiceKeyCodec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, k, back)
	assert.Equal(t, "Seller Co/INV-7", k.String())
}

func TestRegisteredBuyer_CreditLimit(t *testing.T) {
	base := map[string]any{"operator": "Op", "buyer": "Bank", "name": "Bank", "since": "2024-01-01"}

	decode := func(limit any, present bool) RegisteredBuyer {
		raw := make(map[string]any, len(base)+1)
		for k, v := range base {
			raw[k] = v
		}
		if present {
			raw["creditLimit"] = limit
		}
		b, err := RegisteredBuyerTemplate.Decode(raw)
		require.NoError(t, err)
		return b
	}

	_, _, assessed := decode(nil, false).Limit()
	assert.False(t, assessed)

	_, limited, assessed := decode([]any{}, true).Limit()
	assert.True(t, assessed)
	assert.False(t, limited)

	limit, limited, assessed := decode([]any{"5000.0"}, true).Limit()
	assert.True(t, assessed)
	assert.True(t, limited)
	assert.Equal(t, codec.Decimal("5000.0"), limit)
}

func TestSchema(t *testing.T) {
	assert.Equal(t,
		"record invoice { seller: party, buyer: option<party>, number: string, amount: numeric(10), "+
			"issued: time, due: date, status: invoice-status, labels: list<tuple<string, string>>, comments: list<comment> }",
		schema.Format(InvoiceTemplate.PayloadType()))
	assert.Equal(t, "tuple<party, string>", schema.Format(InvoiceTemplate.KeyType()))
	assert.Equal(t, "option<option<numeric(10)>>",
		schema.Format(schema.Describe(creditLimitCodec)))
}

func TestWorkflow(t *testing.T) {
	ctx := context.Background()
	l := ledgertest.New(nil)
	Install(l)

	cid := ledgertest.CreateContract(l, InvoiceTemplate, sampleInvoice())

	accepted, err := template.Exercise(ctx, l, InvoiceAccept, cid, AcceptInvoice{Buyer: "Bank A"})
	require.NoError(t, err)
	inv, err := ledgertest.Fetch(l, InvoiceTemplate, accepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, inv.Status)
	assert.Equal(t, codec.Party("Bank A"), inv.Buyer.OrElse(""))

	_, err = template.Exercise(ctx, l, InvoiceAccept, accepted, AcceptInvoice{Buyer: "Bank B"})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseSubmit, Kind: errors.KindRejected})

	paid, err := template.Exercise(ctx, l, InvoicePay, accepted, codec.Unit{})
	require.NoError(t, err)
	inv, err = ledgertest.Fetch(l, InvoiceTemplate, paid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, inv.Status)
}

func TestWorkflow_Split(t *testing.T) {
	ctx := context.Background()
	l := ledgertest.New(nil)
	Install(l)

	cid := ledgertest.CreateContract(l, InvoiceTemplate, sampleInvoice())

	_, err := template.Exercise(ctx, l, InvoiceSplit, cid, SplitInvoice{Amounts: []codec.Decimal{"10.0", "20.0"}})
	assert.Error(t, err)

	parts, err := template.Exercise(ctx, l, InvoiceSplit, cid, SplitInvoice{Amounts: []codec.Decimal{"40.5", "59.5"}})
	require.NoError(t, err)
	require.Len(t, parts, 2)

	second, err := ledgertest.Fetch(l, InvoiceTemplate, parts[1])
	require.NoError(t, err)
	assert.Equal(t, "INV-7-2", second.Number)
	assert.Equal(t, codec.Decimal("59.5"), second.Amount)
	assert.Len(t, l.Active(InvoiceTemplateID), 2)
}

func TestWorkflow_UpdateLimit(t *testing.T) {
	ctx := context.Background()
	l := ledgertest.New(nil)
	Install(l)
	Seed(l, now)

	ids := l.Active(RegisteredBuyerTemplateID)
	require.Len(t, ids, 2)
	cid, err := codec.ContractIDOf[RegisteredBuyer](RegisteredBuyerTemplate).Decode(ids[1])
	require.NoError(t, err)

	next, err := template.Exercise(ctx, l, BuyerUpdateLimit, cid, UpdateLimit{Limit: codec.Some[codec.Decimal]("1000.0")})
	require.NoError(t, err)
	b, err := ledgertest.Fetch(l, RegisteredBuyerTemplate, next)
	require.NoError(t, err)
	limit, limited, _ := b.Limit()
	assert.True(t, limited)
	assert.Equal(t, codec.Decimal("1000.0"), limit)
}

func TestSeededEvents(t *testing.T) {
	l := ledgertest.New(nil)
	Install(l)
	Seed(l, now)

	ids := l.Active(InvoiceTemplateID)
	require.Len(t, ids, 1)
	raw, err := l.Event(ids[0])
	require.NoError(t, err)
	inv, err := template.DecodeCreateEvent(InvoiceTemplate, raw)
	require.NoError(t, err)
	assert.Equal(t, InvoiceKey{Seller: "Seller Co", Number: "INV-1001"}, inv.Key)
	assert.Equal(t, []codec.Party{"Seller Co"}, inv.Signatories)

	for _, id := range l.Active(RegisteredBuyerTemplateID) {
		raw, err := l.Event(id)
		require.NoError(t, err)
		b, err := template.DecodeCreateEvent(RegisteredBuyerTemplate, raw)
		require.NoError(t, err)
		assert.Equal(t, b.Payload.Buyer, b.Key)
		assert.Equal(t, []codec.Party{"Operator"}, b.Signatories)
	}
}
