package factoring

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/internal/ledgertest"
)

// Install registers the choice handlers of the factoring templates on l.
func Install(l *ledgertest.Ledger) {
	ledgertest.HandleChoice(l, InvoiceAccept, true,
		func(_ context.Context, _ codec.ContractID[Invoice], inv Invoice, arg AcceptInvoice) (codec.ContractID[Invoice], error) {
			if inv.Status != StatusOpen {
				return codec.ContractID[Invoice]{}, fmt.Errorf("invoice %s is %s", KeyOf(inv), inv.Status)
			}
			inv.Buyer = codec.Some(arg.Buyer)
			inv.Status = StatusAccepted
			return ledgertest.CreateContract(l, InvoiceTemplate, inv), nil
		})

	ledgertest.HandleChoice(l, InvoicePay, true,
		func(_ context.Context, _ codec.ContractID[Invoice], inv Invoice, _ codec.Unit) (codec.ContractID[Invoice], error) {
			if inv.Status != StatusAccepted {
				return codec.ContractID[Invoice]{}, fmt.Errorf("invoice %s is %s", KeyOf(inv), inv.Status)
			}
			inv.Status = StatusPaid
			return ledgertest.CreateContract(l, InvoiceTemplate, inv), nil
		})

	ledgertest.HandleChoice(l, InvoiceComment, true,
		func(_ context.Context, _ codec.ContractID[Invoice], inv Invoice, c Comment) (codec.ContractID[Invoice], error) {
			inv.Comments = append(inv.Comments, c)
			return ledgertest.CreateContract(l, InvoiceTemplate, inv), nil
		})

	ledgertest.HandleChoice(l, InvoiceSplit, true,
		func(_ context.Context, _ codec.ContractID[Invoice], inv Invoice, arg SplitInvoice) ([]codec.ContractID[Invoice], error) {
			return split(l, inv, arg.Amounts)
		})

	ledgertest.HandleChoice(l, BuyerUpdateLimit, true,
		func(_ context.Context, _ codec.ContractID[RegisteredBuyer], b RegisteredBuyer, arg UpdateLimit) (codec.ContractID[RegisteredBuyer], error) {
			b.CreditLimit = codec.Some(arg.Limit)
			return ledgertest.CreateContract(l, RegisteredBuyerTemplate, b), nil
		})
}

// split replaces inv by invoices for amounts, which must add up to the
// invoice amount.
func split(l *ledgertest.Ledger, inv Invoice, amounts []codec.Decimal) ([]codec.ContractID[Invoice], error) {
	if inv.Status != StatusOpen {
		return nil, fmt.Errorf("invoice %s is %s", KeyOf(inv), inv.Status)
	}
	total, ok := inv.Amount.Rat()
	if !ok {
		return nil, fmt.Errorf("invoice %s has amount %q", KeyOf(inv), inv.Amount)
	}
	sum := new(big.Rat)
	for _, a := range amounts {
		r, ok := a.Rat()
		if !ok {
			return nil, fmt.Errorf("split amount %q", a)
		}
		sum.Add(sum, r)
	}
	if sum.Cmp(total) != 0 {
		return nil, fmt.Errorf("split amounts add up to %s, invoice amount is %s", sum.FloatString(10), inv.Amount)
	}

	ids := make([]codec.ContractID[Invoice], len(amounts))
	for i, a := range amounts {
		part := inv
		part.Number = fmt.Sprintf("%s-%d", inv.Number, i+1)
		part.Amount = a
		ids[i] = ledgertest.CreateContract(l, InvoiceTemplate, part)
	}
	return ids, nil
}

// Seed creates a small set of contracts on l.
func Seed(l *ledgertest.Ledger, now time.Time) {
	ledgertest.CreateContract(l, RegisteredBuyerTemplate, RegisteredBuyer{
		Operator:    "Operator",
		Buyer:       "Bank A",
		Name:        "Bank A Factoring",
		CreditLimit: codec.Some(codec.Some[codec.Decimal]("250000.0")),
		Since:       codec.DateOf(now),
	})
	ledgertest.CreateContract(l, RegisteredBuyerTemplate, RegisteredBuyer{
		Operator:    "Operator",
		Buyer:       "Bank B",
		Name:        "Bank B Capital",
		CreditLimit: codec.Some(codec.None[codec.Decimal]()),
		Since:       codec.DateOf(now),
	})
	ledgertest.CreateContract(l, InvoiceTemplate, Invoice{
		Seller: "Seller Co",
		Number: "INV-1001",
		Amount: "12000.5",
		Issued: codec.TimeOf(now),
		Due:    codec.DateOf(now.AddDate(0, 0, 60)),
		Status: StatusOpen,
		Labels: codec.TextMap[string]{"currency": "EUR"},
		Comments: []Comment{{
			Author:  "Seller Co",
			Text:    "net 60",
			Replies: []Comment{{Author: "Operator", Text: "approved"}},
		}},
	})
}
