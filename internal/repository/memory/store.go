// Package memory is an in-process implementation of repository.Store.
// Transactions are executed one at a time against a private copy of the
// state, which makes every schedule trivially serializable.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/repository"
)

type state struct {
	accounts     map[string]domain.Account
	booked       map[int64]int
	reservations map[int64]domain.Reservation
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[string]domain.Account, len(s.accounts)),
		booked:       make(map[int64]int, len(s.booked)),
		reservations: make(map[int64]domain.Reservation, len(s.reservations)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.booked {
		c.booked[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	return c
}

type Store struct {
	txMu    sync.Mutex
	flights []domain.Flight

	mu     sync.Mutex
	state  *state
	lastID int64
}

// NewStore returns a store serving the given flights. Flights are read-only.
func NewStore(flights []domain.Flight) *Store {
	return &Store{
		flights: append([]domain.Flight(nil), flights...),
		state: &state{
			accounts:     make(map[string]domain.Account),
			booked:       make(map[int64]int),
			reservations: make(map[int64]domain.Reservation),
		},
	}
}

func (s *Store) Begin(ctx context.Context) (repository.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()

	s.mu.Lock()
	st := s.state.clone()
	s.mu.Unlock()

	return &tx{store: s, st: st}, nil
}

// Booked reports the committed booked count of a flight.
func (s *Store) Booked(flightID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.booked[flightID]
}

// Account returns the committed state of an account.
func (s *Store) Account(username string) (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.state.accounts[username]
	return a, ok
}

// nextID hands out reservation ids. Like a database sequence it is not
// rolled back with the transaction.
func (s *Store) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID
}

type tx struct {
	store *Store
	st    *state
	done  bool
}

func (t *tx) Accounts() repository.AccountRepository         { return accounts{t} }
func (t *tx) Flights() repository.FlightRepository           { return flights{t} }
func (t *tx) Capacities() repository.CapacityRepository      { return capacities{t} }
func (t *tx) Reservations() repository.ReservationRepository { return reservations{t} }

func (t *tx) Truncate(_ context.Context) error {
	t.st.accounts = make(map[string]domain.Account)
	t.st.booked = make(map[int64]int)
	t.st.reservations = make(map[int64]domain.Reservation)
	return nil
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return nil
	}
	t.store.mu.Lock()
	t.store.state = t.st
	t.store.mu.Unlock()
	t.finish()
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *tx) finish() {
	t.done = true
	t.store.txMu.Unlock()
}

type accounts struct{ t *tx }

func (r accounts) Exists(_ context.Context, username string) (bool, error) {
	_, ok := r.t.st.accounts[username]
	return ok, nil
}

func (r accounts) Get(_ context.Context, username string) (*domain.Account, error) {
	a, ok := r.t.st.accounts[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r accounts) Create(_ context.Context, account *domain.Account) error {
	if _, ok := r.t.st.accounts[account.Username]; ok {
		return errDuplicateKey
	}
	r.t.st.accounts[account.Username] = *account
	return nil
}

func (r accounts) AdjustBalance(_ context.Context, username string, delta int64) (int64, error) {
	a, ok := r.t.st.accounts[username]
	if !ok {
		return 0, repository.ErrNoRowsAffected
	}
	if a.Balance+delta < 0 {
		return 0, errCheckViolation
	}
	a.Balance += delta
	r.t.st.accounts[username] = a
	return a.Balance, nil
}

type flights struct{ t *tx }

func (r flights) Direct(_ context.Context, origin, dest string, day, limit int) ([]domain.Flight, error) {
	var out []domain.Flight
	for _, f := range r.t.store.flights {
		if f.Origin == origin && f.Dest == dest && f.DayOfMonth == day && !f.Canceled {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration < out[j].Duration
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r flights) OneStop(_ context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error) {
	var out [][2]domain.Flight
	for _, a := range r.t.store.flights {
		if a.Origin != origin || a.DayOfMonth != day || a.Canceled {
			continue
		}
		for _, b := range r.t.store.flights {
			if b.Origin == a.Dest && b.Dest == dest && b.DayOfMonth == day && !b.Canceled {
				out = append(out, [2]domain.Flight{a, b})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i][0].Duration + out[i][1].Duration
		dj := out[j][0].Duration + out[j][1].Duration
		if di != dj {
			return di < dj
		}
		if out[i][0].ID != out[j][0].ID {
			return out[i][0].ID < out[j][0].ID
		}
		return out[i][1].ID < out[j][1].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type capacities struct{ t *tx }

func (r capacities) Booked(_ context.Context, flightID int64) (int, error) {
	return r.t.st.booked[flightID], nil
}

func (r capacities) Increment(_ context.Context, flightID int64) (int, error) {
	r.t.st.booked[flightID]++
	return r.t.st.booked[flightID], nil
}

func (r capacities) Decrement(_ context.Context, flightID int64) (int, error) {
	n, ok := r.t.st.booked[flightID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if n == 0 {
		return 0, errCheckViolation
	}
	r.t.st.booked[flightID] = n - 1
	return n - 1, nil
}

func (r capacities) Remove(_ context.Context, flightID int64) error {
	delete(r.t.st.booked, flightID)
	return nil
}

type reservations struct{ t *tx }

func (r reservations) ExistsOnDay(_ context.Context, username string, day int) (bool, error) {
	for _, res := range r.t.st.reservations {
		if res.Username == username && res.DayOfMonth == day {
			return true, nil
		}
	}
	return false, nil
}

func (r reservations) Create(_ context.Context, res *domain.Reservation) error {
	if _, ok := r.t.st.accounts[res.Username]; !ok {
		return errForeignKeyViolation
	}
	res.ID = r.t.store.nextID()
	res.Paid = false
	r.t.st.reservations[res.ID] = *res
	return nil
}

func (r reservations) Get(_ context.Context, id int64, username string) (*domain.Reservation, error) {
	res, ok := r.t.st.reservations[id]
	if !ok || res.Username != username {
		return nil, repository.ErrNotFound
	}
	return &res, nil
}

func (r reservations) MarkPaid(_ context.Context, id int64, username string) error {
	res, ok := r.t.st.reservations[id]
	if !ok || res.Username != username || res.Paid {
		return repository.ErrNoRowsAffected
	}
	res.Paid = true
	r.t.st.reservations[id] = res
	return nil
}

func (r reservations) Delete(_ context.Context, id int64, username string) error {
	res, ok := r.t.st.reservations[id]
	if !ok || res.Username != username {
		return repository.ErrNoRowsAffected
	}
	delete(r.t.st.reservations, id)
	return nil
}

func (r reservations) ListByUser(_ context.Context, username string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.t.st.reservations {
		if res.Username == username {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*tx)(nil)
)
