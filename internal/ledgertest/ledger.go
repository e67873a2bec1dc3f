// Package ledgertest provides an in-memory ledger that implements
// template.Submitter for tests and the inspect demo.
package ledgertest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/template"
)

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrArchived         = errors.New("contract archived")
	ErrWrongTemplate    = errors.New("contract belongs to another template")
	ErrNoHandler        = errors.New("no handler for choice")
)

// Handler executes a choice. payload and arg are raw values; the returned
// value is the raw result.
type Handler func(ctx context.Context, contractID string, payload, arg any) (any, error)

type contract struct {
	payload     any
	key         any
	templateID  string
	signatories []codec.Party
	archived    bool
}

type handler struct {
	fn        Handler
	consuming bool
}

// Ledger is an in-memory contract store. Contract ids are random UUIDs.
type Ledger struct {
	contracts map[string]*contract
	handlers  map[string]handler
	logger    *zap.Logger
	order     []string
	mu        sync.Mutex
}

// New creates an empty ledger. A nil logger disables logging.
func New(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		contracts: make(map[string]*contract),
		handlers:  make(map[string]handler),
		logger:    logger,
	}
}

func handlerKey(templateID, choice string) string {
	return templateID + "#" + choice
}

// Create stores a raw payload with its raw key, nil for none, and returns
// the new contract id.
func (l *Ledger) Create(templateID string, payload, key any, signatories ...codec.Party) string {
	id := uuid.NewString()

	l.mu.Lock()
	l.contracts[id] = &contract{
		templateID:  templateID,
		payload:     payload,
		key:         key,
		signatories: signatories,
	}
	l.order = append(l.order, id)
	l.mu.Unlock()

	l.logger.Debug("contract created", zap.String("template", templateID), zap.String("contract", id))
	return id
}

// Handle installs the handler for choice on templateID. A consuming choice
// archives the contract when the handler succeeds.
func (l *Ledger) Handle(templateID, choice string, consuming bool, fn Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[handlerKey(templateID, choice)] = handler{fn: fn, consuming: consuming}
}

// Exercise implements template.Submitter. Archive is handled by the ledger
// itself; other choices need a handler. A consuming choice archives the
// contract before its handler runs, so concurrent exercises of the same
// contract see ErrArchived; the contract is restored if the handler fails.
func (l *Ledger) Exercise(ctx context.Context, templateID, contractID, choice string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	c, err := l.active(templateID, contractID)
	if err != nil {
		l.mu.Unlock()
		return nil, err
	}
	if choice == template.ArchiveChoice {
		c.archived = true
		l.mu.Unlock()
		l.logger.Debug("contract archived", zap.String("contract", contractID))
		return codec.UnitCodec.Encode(codec.Unit{}), nil
	}
	h, ok := l.handlers[handlerKey(templateID, choice)]
	if !ok {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %s on %s", ErrNoHandler, choice, templateID)
	}
	if h.consuming {
		c.archived = true
	}
	payload := c.payload
	l.mu.Unlock()

	res, err := h.fn(ctx, contractID, payload, arg)
	if err != nil {
		if h.consuming {
			l.mu.Lock()
			c.archived = false
			l.mu.Unlock()
		}
		return nil, err
	}
	l.logger.Debug("choice exercised",
		zap.String("template", templateID),
		zap.String("contract", contractID),
		zap.String("choice", choice),
		zap.Bool("consuming", h.consuming))
	return res, nil
}

func (l *Ledger) active(templateID, contractID string) (*contract, error) {
	c, ok := l.contracts[contractID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
	}
	if c.templateID != templateID {
		return nil, fmt.Errorf("%w: %s is a %s", ErrWrongTemplate, contractID, c.templateID)
	}
	if c.archived {
		return nil, fmt.Errorf("%w: %s", ErrArchived, contractID)
	}
	return c, nil
}

// Payload returns the raw payload of an active contract.
func (l *Ledger) Payload(templateID, contractID string) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, err := l.active(templateID, contractID)
	if err != nil {
		return nil, err
	}
	return c.payload, nil
}

// Active returns the ids of active contracts of templateID in creation order.
func (l *Ledger) Active(templateID string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ids []string
	for _, id := range l.order {
		c := l.contracts[id]
		if c.templateID == templateID && !c.archived {
			ids = append(ids, id)
		}
	}
	return ids
}

// Event returns the raw create event of a contract, as a ledger stream
// would deliver it.
func (l *Ledger) Event(contractID string) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.contracts[contractID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractID)
	}
	ev := map[string]any{
		"templateId": c.templateID,
		"contractId": contractID,
		"payload":    c.payload,
	}
	if c.key != nil {
		ev["key"] = c.key
	}
	if len(c.signatories) > 0 {
		parties := make([]any, len(c.signatories))
		for i, p := range c.signatories {
			parties[i] = codec.PartyCodec.Encode(p)
		}
		ev["signatories"] = parties
	}
	return ev, nil
}

// TemplateIDs returns the templates with at least one contract, sorted.
func (l *Ledger) TemplateIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	seen := make(map[string]struct{})
	for _, c := range l.contracts {
		seen[c.templateID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var _ template.Submitter = (*Ledger)(nil)
