// Package ordering owns the customer's cart and the lifecycle of an order
// attempt: validation, the duplicate-order guard, override and commit.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"southern-spoon-api/events"
	"southern-spoon-api/models"
	"southern-spoon-api/pricing"
	"southern-spoon-api/statemachine"
	"southern-spoon-api/store"

	"github.com/sirupsen/logrus"
)

// DefaultConfirmationTTL is how long the "order placed" message stays visible
const DefaultConfirmationTTL = 5 * time.Second

const publishTimeout = 5 * time.Second

// Recorder receives order outcome counts
type Recorder interface {
	Committed(override bool)
	Duplicate()
	Rejected(reason string)
	SaveFailed()
}

type nopRecorder struct{}

func (nopRecorder) Committed(bool)  {}
func (nopRecorder) Duplicate()      {}
func (nopRecorder) Rejected(string) {}
func (nopRecorder) SaveFailed()     {}

// Deps are the collaborators shared by every session
type Deps struct {
	Menu            []models.MenuItem
	Orders          *store.Orders
	Rules           pricing.Rules
	Clock           Clock
	IDs             IDGenerator
	Events          events.Publisher
	Recorder        Recorder
	ConfirmationTTL time.Duration
	Log             logrus.FieldLogger
}

func (d Deps) withDefaults() Deps {
	if d.Menu == nil {
		d.Menu = models.DefaultMenu()
	}
	if d.Rules.Cutoffs == nil {
		d.Rules = pricing.DefaultRules()
	}
	if d.Clock == nil {
		d.Clock = SystemClock(time.Local)
	}
	if d.IDs == nil {
		d.IDs = &TimestampIDs{}
	}
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	if d.Recorder == nil {
		d.Recorder = nopRecorder{}
	}
	if d.ConfirmationTTL == 0 {
		d.ConfirmationTTL = DefaultConfirmationTTL
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.Orders == nil {
		d.Orders = store.NewOrders(store.NewMemory(), d.Log)
	}
	return d
}

// Contact is what the customer types into the checkout form
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
}

func (c Contact) complete() bool {
	return c.Name != "" && c.Phone != "" && c.Address != ""
}

// Outcome reports where an attempt ended
type Outcome struct {
	State    statemachine.State  `json:"state"`
	Order    *models.OrderRecord `json:"order,omitempty"`
	Existing *models.OrderRecord `json:"existing,omitempty"`
}

// View is a snapshot of a session for display
type View struct {
	ID               string              `json:"session_id"`
	Meal             models.MealSlot     `json:"meal"`
	Items            []models.CartLine   `json:"items"`
	Contact          Contact             `json:"contact"`
	Quote            pricing.Quote       `json:"quote"`
	State            statemachine.State  `json:"state"`
	Reason           string              `json:"reason,omitempty"`
	DuplicateWarning bool                `json:"duplicate_warning"`
	Duplicate        *models.OrderRecord `json:"duplicate,omitempty"`
	Pending          *models.OrderRecord `json:"pending,omitempty"`
	Existing         *models.OrderRecord `json:"existing,omitempty"`
	Placed           *models.OrderRecord `json:"placed,omitempty"`
	Confirmation     string              `json:"confirmation,omitempty"`
}

// Session is one customer's open order form. All methods are safe for
// concurrent use; each runs to completion before the next starts.
type Session struct {
	id   string
	deps Deps
	log  logrus.FieldLogger

	mu           sync.Mutex
	lines        []models.CartLine
	meal         models.MealSlot
	contact      Contact
	state        statemachine.State
	reason       string
	held         *models.OrderRecord // new order waiting on the duplicate decision
	duplicate    *models.OrderRecord // record that triggered the duplicate guard
	existing     *models.OrderRecord // advisory result of the last phone lookup
	placed       *models.OrderRecord
	confirmation string
	confirmGen   uint64
	touched      time.Time
}

func NewSession(id string, deps Deps) *Session {
	deps = deps.withDefaults()
	return &Session{
		id:      id,
		deps:    deps,
		log:     deps.Log.WithField("session_id", id),
		lines:   models.NewCart(deps.Menu),
		meal:    models.MealLunch,
		state:   statemachine.StateIdle,
		touched: deps.Clock.Now(),
	}
}

func (s *Session) ID() string { return s.id }

// MaxQty bounds the quantity of a single cart line
const MaxQty = 99

// ChangeQty adds delta to an item's quantity, never going below zero
func (s *Session) ChangeQty(itemID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if delta > MaxQty || delta < -MaxQty {
		return fmt.Errorf("%w: change of %d", ErrInvalidQty, delta)
	}
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			qty := max(0, s.lines[i].Qty+delta)
			if qty > MaxQty {
				return fmt.Errorf("%w: at most %d of %s", ErrInvalidQty, MaxQty, itemID)
			}
			s.lines[i].Qty = qty
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
}

func (s *Session) SetMeal(slot models.MealSlot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownMeal, slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.meal = slot
	return nil
}

func (s *Session) SetContact(c Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.contact = Contact{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		Note:    strings.TrimSpace(c.Note),
	}
}

// Quote prices the current cart at the current time
func (s *Session) Quote() pricing.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Rules.Quote(s.lines, s.meal, s.deps.Clock.Now())
}

// Submit validates the form and either commits the order or stops at the
// duplicate-order guard when the phone number already has an order.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err := s.transition(statemachine.StateValidating, statemachine.TriggerSubmit); err != nil {
		return Outcome{State: s.state}, err
	}
	s.reason = ""

	now := s.deps.Clock.Now()
	quote := s.deps.Rules.Quote(s.lines, s.meal, now)
	if quote.Subtotal <= 0 {
		return s.reject(ErrEmptyCart)
	}
	if !s.contact.complete() {
		return s.reject(ErrMissingContact)
	}

	rec := s.buildOrder(now, quote)
	prev, err := s.deps.Orders.Find(ctx, rec.Phone)
	switch {
	case err == nil:
		return s.holdDuplicate(rec, prev), nil
	case !errors.Is(err, store.ErrNotFound):
		return s.abort(rec, err)
	}

	// another session may have stored this phone since the lookup
	prev, err = s.create(ctx, rec)
	if err != nil {
		return s.abort(rec, err)
	}
	if prev != nil {
		return s.holdDuplicate(rec, prev), nil
	}
	s.committed(ctx, rec, false)
	s.mustTransition(statemachine.StateCommitted, statemachine.TriggerCommit)
	return Outcome{State: s.state, Order: rec}, nil
}

// Override replaces the stored order for the phone number with a fresh order
// built from the current form. Only valid while a duplicate is pending.
func (s *Session) Override(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state != statemachine.StateDuplicateFound {
		return Outcome{State: s.state}, ErrNoPendingDuplicate
	}

	// the cart may have changed while the decision was pending
	now := s.deps.Clock.Now()
	quote := s.deps.Rules.Quote(s.lines, s.meal, now)
	var invalid error
	switch {
	case quote.Subtotal <= 0:
		invalid = ErrEmptyCart
	case !s.contact.complete():
		invalid = ErrMissingContact
	}
	if invalid != nil {
		s.reason = invalid.Error()
		s.deps.Recorder.Rejected(s.reason)
		return Outcome{State: s.state, Existing: s.duplicate}, newValidationError(invalid)
	}

	rec := s.buildOrder(now, quote)
	if err := s.deps.Orders.Save(ctx, rec); err != nil {
		return Outcome{State: s.state, Existing: s.duplicate}, s.saveFailed(rec, err)
	}
	s.committed(ctx, rec, true)
	s.mustTransition(statemachine.StateCommitted, statemachine.TriggerOverride)
	return Outcome{State: s.state, Order: rec}, nil
}

// Cancel drops the held order and leaves the store untouched
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state != statemachine.StateDuplicateFound {
		return ErrNoPendingDuplicate
	}
	s.held, s.duplicate = nil, nil
	s.reason = ""
	s.mustTransition(statemachine.StateIdle, statemachine.TriggerCancel)
	s.log.Info("duplicate order cancelled")
	return nil
}

// LookupPhone shows any order already stored for the phone currently on the
// form. It is advisory and does not move the attempt state.
func (s *Session) LookupPhone(ctx context.Context) (*models.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.contact.Phone == "" {
		return nil, nil
	}
	prev, err := s.deps.Orders.Find(ctx, s.contact.Phone)
	if errors.Is(err, store.ErrNotFound) {
		s.existing = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.existing = prev
	return prev, nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartLine, len(s.lines))
	copy(items, s.lines)
	return View{
		ID:               s.id,
		Meal:             s.meal,
		Items:            items,
		Contact:          s.contact,
		Quote:            s.deps.Rules.Quote(s.lines, s.meal, s.deps.Clock.Now()),
		State:            s.state,
		Reason:           s.reason,
		DuplicateWarning: s.state == statemachine.StateDuplicateFound,
		Duplicate:        s.duplicate,
		Pending:          s.held,
		Existing:         s.existing,
		Placed:           s.placed,
		Confirmation:     s.confirmation,
	}
}

// IdleSince is the last time the customer touched the session
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func (s *Session) touch() {
	s.touched = s.deps.Clock.Now()
}

func (s *Session) transition(to statemachine.State, trigger statemachine.Trigger) error {
	if err := statemachine.CanTransition(s.state, to, trigger); err != nil {
		return err
	}
	s.state = to
	return nil
}

// mustTransition is for moves the session code guarantees are legal
func (s *Session) mustTransition(to statemachine.State, trigger statemachine.Trigger) {
	if err := s.transition(to, trigger); err != nil {
		panic(err)
	}
}

func (s *Session) reject(cause error) (Outcome, error) {
	s.mustTransition(statemachine.StateRejected, statemachine.TriggerReject)
	s.reason = cause.Error()
	s.held, s.duplicate = nil, nil
	s.deps.Recorder.Rejected(s.reason)
	s.log.WithField("reason", s.reason).Info("order rejected")
	s.mustTransition(statemachine.StateIdle, statemachine.TriggerReset)
	return Outcome{State: statemachine.StateRejected}, newValidationError(cause)
}

func (s *Session) buildOrder(now time.Time, quote pricing.Quote) *models.OrderRecord {
	var items []models.OrderItem
	for _, l := range s.lines {
		if l.Qty > 0 {
			items = append(items, models.OrderItem{ID: l.ID, Name: l.Name, Qty: l.Qty, Price: l.Price})
		}
	}
	return &models.OrderRecord{
		ID:             s.deps.IDs.NextID(now),
		Name:           s.contact.Name,
		Phone:          s.contact.Phone,
		Address:        s.contact.Address,
		Meal:           s.meal,
		Items:          items,
		Subtotal:       quote.Subtotal,
		DeliveryCharge: quote.DeliveryCharge,
		Tax:            quote.Tax,
		Total:          quote.Total,
		Note:           s.contact.Note,
		PlacedAt:       now.Format(time.RFC3339),
	}
}

func (s *Session) holdDuplicate(rec, prev *models.OrderRecord) Outcome {
	s.held = rec
	s.duplicate = prev
	s.mustTransition(statemachine.StateDuplicateFound, statemachine.TriggerDuplicate)
	s.deps.Recorder.Duplicate()
	s.log.WithFields(logrus.Fields{"phone": rec.Phone, "existing_order_id": prev.ID}).
		Info("duplicate order held for customer decision")
	return Outcome{State: s.state, Existing: prev}
}

// create stores rec unless its phone already has an order, which is then
// returned for the duplicate guard. An unreadable entry is replaced.
func (s *Session) create(ctx context.Context, rec *models.OrderRecord) (*models.OrderRecord, error) {
	err := s.deps.Orders.Create(ctx, rec)
	if !errors.Is(err, store.ErrExists) {
		return nil, err
	}
	prev, err := s.deps.Orders.Find(ctx, rec.Phone)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.deps.Orders.Save(ctx, rec)
	}
	return prev, err
}

// abort ends a submit whose store access failed; the cart is kept for a retry
func (s *Session) abort(rec *models.OrderRecord, err error) (Outcome, error) {
	s.held, s.duplicate = nil, nil
	s.mustTransition(statemachine.StateIdle, statemachine.TriggerReset)
	return Outcome{State: s.state}, s.saveFailed(rec, err)
}

// committed resets the form after rec was written
func (s *Session) committed(ctx context.Context, rec *models.OrderRecord, override bool) {
	s.placed = rec
	s.lines = models.NewCart(s.deps.Menu)
	s.held, s.duplicate = nil, nil
	s.existing = nil
	s.reason = ""
	s.confirm("Order placed — " + rec.ID)
	s.deps.Recorder.Committed(override)
	s.log.WithFields(logrus.Fields{
		"order_id": rec.ID,
		"phone":    rec.Phone,
		"total":    rec.Total,
		"override": override,
	}).Info("order placed")

	evt := events.NewOrderEvent(rec, override, s.deps.Clock.Now())
	go s.publish(context.WithoutCancel(ctx), evt)
}

func (s *Session) publish(ctx context.Context, evt events.OrderEvent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.deps.Events.Publish(ctx, evt); err != nil {
		s.log.WithError(err).WithField("order_id", evt.OrderID).Warn("could not publish order event")
	}
}

func (s *Session) saveFailed(rec *models.OrderRecord, err error) error {
	s.deps.Recorder.SaveFailed()
	s.log.WithError(err).WithFields(logrus.Fields{"order_id": rec.ID, "phone": rec.Phone}).
		Error("order not saved")
	return &PersistenceError{Phone: rec.Phone, Err: err}
}

// confirm shows msg and schedules it to disappear. A later confirmation
// bumps the generation, so an older timer leaves the newer message alone.
func (s *Session) confirm(msg string) {
	s.confirmGen++
	gen := s.confirmGen
	s.confirmation = msg
	s.deps.Clock.AfterFunc(s.deps.ConfirmationTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.confirmGen == gen {
			s.confirmation = ""
		}
	})
}
