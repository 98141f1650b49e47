// Package gatewaytest runs an in-memory stand-in for the remote data service
// on an httptest server. It mirrors the service's JSON shapes closely enough
// for the gateway, the handlers and the web surface to be tested end to end.
package gatewaytest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"familyspend/internal/core"
)

// Server is the fake service. All methods are safe for concurrent use.
type Server struct {
	srv *httptest.Server

	mu         sync.Mutex
	now        func() time.Time
	nextID     core.ID
	profiles   []core.Profile
	categories []core.Category
	expenses   []core.Expense
	cards      []core.CreditCard
	failures   map[string]bool
	garbled    map[string]bool
	gates      map[string]*Gate
	calls      []string
}

// Gate holds the first request for one endpoint until released.
type Gate struct {
	arrived chan struct{}
	release chan struct{}
	once    sync.Once
}

// Arrived is closed once the held request reached the server.
func (g *Gate) Arrived() <-chan struct{} { return g.arrived }

// Release lets the held request complete.
func (g *Gate) Release() { g.once.Do(func() { close(g.release) }) }

// NewServer starts a fake seeded with two profiles and two categories. It is
// closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		now:    time.Now,
		nextID: 100,
		profiles: []core.Profile{
			{ID: 1, Name: "dad", DisplayName: "Dad"},
			{ID: 2, Name: "mom", DisplayName: "Mom"},
		},
		categories: []core.Category{
			{ID: 1, Name: "Food", NameTe: "ఆహారం", Icon: "🍔"},
			{ID: 2, Name: "Transport", NameTe: "రవాణా", Icon: "🚗"},
		},
		failures: make(map[string]bool),
		garbled:  make(map[string]bool),
		gates:    make(map[string]*Gate),
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(func() {
		s.mu.Lock()
		for _, g := range s.gates {
			g.Release()
		}
		s.mu.Unlock()
		s.srv.Close()
	})
	return s
}

// URL is the API base, including the /api prefix.
func (s *Server) URL() string { return s.srv.URL + "/api" }

// SetNow fixes the clock used for period and billing cycle windows.
func (s *Server) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = func() time.Time { return now }
}

// SetProfiles replaces the profile set.
func (s *Server) SetProfiles(p ...core.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append([]core.Profile(nil), p...)
}

// AddExpense stores e as if it had been posted and returns its id.
func (s *Server) AddExpense(e core.ExpenseInput) core.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertExpense(e)
}

// AddCard stores c and returns its id.
func (s *Server) AddCard(in core.CreditCardInput) core.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertCard(in)
}

// Expenses returns the stored expenses in insertion order.
func (s *Server) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...)
}

// Cards returns the stored cards in insertion order.
func (s *Server) Cards() []core.CreditCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CreditCard(nil), s.cards...)
}

// Fail makes every request matching method and path prefix (without /api)
// answer 500 until Reset.
func (s *Server) Fail(method, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+prefix] = true
}

// Garble makes matching requests answer 200 with a body that is not JSON.
func (s *Server) Garble(method, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.garbled[method+" "+prefix] = true
}

// Reset clears injected failures.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]bool)
	s.garbled = make(map[string]bool)
}

// Hold installs a gate on the exact request "METHOD /path?query" (without /api).
func (s *Server) Hold(request string) *Gate {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &Gate{arrived: make(chan struct{}), release: make(chan struct{})}
	s.gates[request] = g
	return g
}

// Calls lists every request received as "METHOD /path?query" (without /api).
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CallCount counts calls whose "METHOD /path" starts with prefix.
func (s *Server) CallCount(prefix string) int {
	n := 0
	for _, c := range s.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func matches(rules map[string]bool, call string) bool {
	for rule := range rules {
		if strings.HasPrefix(call, rule) {
			return true
		}
	}
	return false
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		if r.URL.RawQuery != "" {
			call += "?" + r.URL.RawQuery
		}

		s.mu.Lock()
		s.calls = append(s.calls, call)
		gate := s.gates[call]
		delete(s.gates, call)
		fail := matches(s.failures, call)
		garble := matches(s.garbled, call)
		s.mu.Unlock()

		if gate != nil {
			close(gate.arrived)
			select {
			case <-gate.release:
			case <-r.Context().Done():
				return
			}
		}

		switch {
		case fail:
			http.Error(w, `{"error":"injected failure"}`, http.StatusInternalServerError)
		case garble:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"total_spent": `))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/profiles", s.handleProfiles)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/dashboard/{id}", s.handleDashboard)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/family-overview", s.handleFamily)
	mux.HandleFunc("GET /api/export/csv", s.handleExport)
	mux.HandleFunc("GET /api/credit-cards", s.handleListCards)
	mux.HandleFunc("POST /api/credit-cards", s.handleCreateCard)
	mux.HandleFunc("PUT /api/credit-cards/{id}", s.handleUpdateCard)
	mux.HandleFunc("DELETE /api/credit-cards/{id}", s.handleDeleteCard)
	mux.HandleFunc("GET /api/credit-cards/{id}/dashboard", s.handleCardDashboard)
	return s.intercept(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) (core.ID, bool) {
	v, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return core.ID(v), err == nil && v > 0
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.profiles)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categories)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := core.NewExpenseFilters(r.URL.Query().Get("profile_id"), r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.filtered(f))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in core.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Validate() != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid expense"})
		return
	}
	s.mu.Lock()
	id := s.insertExpense(in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Expense added successfully"})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		for i, e := range s.expenses {
			if e.ID == id {
				s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Expense not found"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if !ok || err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	start := periodStart(now, period)

	var (
		total  decimal.Decimal
		byCat  = map[core.ID]decimal.Decimal{}
		byDay  = map[string]decimal.Decimal{}
		weekAt = core.NewDate(now.Year(), int(now.Month()), now.Day()).AddDate(0, 0, -6)
	)
	for _, e := range s.expenses {
		if e.ProfileID != id {
			continue
		}
		if !e.Date.Before(start) {
			total = total.Add(e.Amount.Decimal)
			byCat[e.CategoryID] = byCat[e.CategoryID].Add(e.Amount.Decimal)
		}
		if !e.Date.Before(weekAt) {
			byDay[e.Date.String()] = byDay[e.Date.String()].Add(e.Amount.Decimal)
		}
	}

	breakdown := s.breakdown(byCat)
	top := breakdown
	if len(top) > 3 {
		top = top[:3]
	}
	var trend []core.DayAmount
	for i := 0; i < 7; i++ {
		d := core.Date{Time: weekAt.AddDate(0, 0, i)}
		trend = append(trend, core.DayAmount{Date: d, Amount: core.Money{Decimal: byDay[d.String()]}})
	}

	writeJSON(w, http.StatusOK, core.DashboardSnapshot{
		TotalSpent:        core.Money{Decimal: total},
		CategoryBreakdown: breakdown,
		TopCategories:     top,
		WeeklyTrend:       trend,
	})
}

func (s *Server) handleFamily(w http.ResponseWriter, r *http.Request) {
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid period"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	start := periodStart(s.now(), period)

	var total decimal.Decimal
	byProfile := map[core.ID]decimal.Decimal{}
	byCat := map[core.ID]decimal.Decimal{}
	for _, e := range s.expenses {
		if e.Date.Before(start) {
			continue
		}
		total = total.Add(e.Amount.Decimal)
		byProfile[e.ProfileID] = byProfile[e.ProfileID].Add(e.Amount.Decimal)
		byCat[e.CategoryID] = byCat[e.CategoryID].Add(e.Amount.Decimal)
	}

	var spending []core.ProfileAmount
	for _, p := range s.profiles {
		spending = append(spending, core.ProfileAmount{Profile: p.DisplayName, Amount: core.Money{Decimal: byProfile[p.ID]}})
	}
	sort.SliceStable(spending, func(i, j int) bool { return spending[i].Amount.GreaterThan(spending[j].Amount.Decimal) })

	top := s.breakdown(byCat)
	if len(top) > 5 {
		top = top[:5]
	}
	writeJSON(w, http.StatusOK, core.FamilyOverviewSnapshot{
		TotalFamily:     core.Money{Decimal: total},
		ProfileSpending: spending,
		TopCategories:   top,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := core.NewExpenseFilters(r.URL.Query().Get("profile_id"), r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	rows := s.filtered(f)
	now := s.now()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="expenses_%s.csv"`, now.Format("20060102")))
	cw := csv.NewWriter(w)
	cw.Write([]string{"Date", "Profile", "Category", "Amount", "Note"})
	for _, e := range rows {
		cw.Write([]string{e.Date.String(), e.ProfileName, e.CategoryName, e.Amount.String(), e.Note})
	}
	cw.Flush()
}

func (s *Server) handleListCards(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.CreditCard{}, s.cards...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var in core.CreditCardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Validate() != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid card"})
		return
	}
	s.mu.Lock()
	id := s.insertCard(in)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Credit card added successfully"})
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	var in core.CreditCardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !ok || in.Validate() != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid card"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cards {
		if c.ID == id {
			s.cards[i] = s.cardFrom(id, in)
			s.cards[i].CreatedAt = c.CreatedAt
			writeJSON(w, http.StatusOK, map[string]string{"message": "Credit card updated successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Card not found"})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		for i, c := range s.cards {
			if c.ID == id {
				s.cards = append(s.cards[:i], s.cards[i+1:]...)
				for j := range s.expenses {
					if s.expenses[j].CardID != nil && *s.expenses[j].CardID == id {
						s.expenses[j].CardID = nil
					}
				}
				writeJSON(w, http.StatusOK, map[string]string{"message": "Credit card deleted successfully"})
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Card not found"})
}

func (s *Server) handleCardDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var card *core.CreditCard
	for i := range s.cards {
		if s.cards[i].ID == id {
			card = &s.cards[i]
		}
	}
	if card == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Card not found"})
		return
	}

	start, end := BillingCycle(s.now(), card.BillingDay)
	var (
		spent  decimal.Decimal
		byCat  = map[core.ID]decimal.Decimal{}
		recent []core.CardTransaction
	)
	rows := append([]core.Expense(nil), s.expenses...)
	sortNewestFirst(rows)
	for _, e := range rows {
		if e.CardID == nil || *e.CardID != id {
			continue
		}
		if !e.Date.Before(start.Time) && !e.Date.After(end.Time) {
			spent = spent.Add(e.Amount.Decimal)
			byCat[e.CategoryID] = byCat[e.CategoryID].Add(e.Amount.Decimal)
		}
		if len(recent) < 10 {
			recent = append(recent, core.CardTransaction{
				ID: e.ID, Amount: e.Amount, Date: e.Date, Note: e.Note, Category: e.CategoryName, Icon: e.CategoryIcon,
			})
		}
	}

	breakdown := s.breakdown(byCat)
	if len(breakdown) > 5 {
		breakdown = breakdown[:5]
	}
	var utilization float64
	if card.CreditLimit.IsPositive() {
		utilization, _ = spent.Div(card.CreditLimit.Decimal).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	writeJSON(w, http.StatusOK, core.CardDashboardSnapshot{
		Card: core.CardInfo{
			Name: card.Name, LastFour: card.LastFour, CreditLimit: card.CreditLimit, BillingDay: card.BillingDay, Color: card.Color,
		},
		TotalSpent:         core.Money{Decimal: spent},
		AvailableBalance:   core.Money{Decimal: card.CreditLimit.Decimal.Sub(spent)},
		Utilization:        utilization,
		CycleStart:         start,
		CycleEnd:           end,
		CategoryBreakdown:  breakdown,
		RecentTransactions: recent,
	})
}

// BillingCycle returns the cycle containing now for a card billed on day.
// Days past the end of a month roll over the way time.Date normalizes them.
func BillingCycle(now time.Time, day int) (core.Date, core.Date) {
	y, m := now.Year(), int(now.Month())
	if now.Day() < day {
		m--
	}
	start := core.NewDate(y, m, day)
	end := core.Date{Time: core.NewDate(y, m+1, day).AddDate(0, 0, -1)}
	return start, end
}

func periodStart(now time.Time, p core.Period) time.Time {
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	switch p {
	case core.Week:
		return today.AddDate(0, 0, -7)
	case core.Year:
		return core.NewDate(now.Year(), 1, 1).Time
	default:
		return core.NewDate(now.Year(), int(now.Month()), 1).Time
	}
}

func (s *Server) breakdown(byCat map[core.ID]decimal.Decimal) []core.CategoryAmount {
	out := []core.CategoryAmount{}
	for _, c := range s.categories {
		amount, ok := byCat[c.ID]
		if !ok {
			continue
		}
		out = append(out, core.CategoryAmount{Category: c.Name, CategoryTe: c.NameTe, Icon: c.Icon, Amount: core.Money{Decimal: amount}})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount.Decimal) })
	return out
}

func (s *Server) filtered(f core.ExpenseFilters) []core.Expense {
	out := []core.Expense{}
	for _, e := range s.expenses {
		if f.ProfileID != nil && e.ProfileID != *f.ProfileID {
			continue
		}
		if !f.StartDate.IsZero() && e.Date.Before(f.StartDate.Time) {
			continue
		}
		if !f.EndDate.IsZero() && e.Date.After(f.EndDate.Time) {
			continue
		}
		out = append(out, e)
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(rows []core.Expense) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date.Time) {
			return rows[i].Date.After(rows[j].Date.Time)
		}
		return rows[i].ID > rows[j].ID
	})
}

func (s *Server) insertExpense(in core.ExpenseInput) core.ID {
	s.nextID++
	e := core.Expense{
		ID:         s.nextID,
		ProfileID:  in.ProfileID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Date:       in.Date,
		Note:       in.Note,
		CardID:     in.CardID,
		CreatedAt:  s.now().UTC().Format("2006-01-02 15:04:05"),
	}
	for _, p := range s.profiles {
		if p.ID == in.ProfileID {
			e.ProfileName = p.DisplayName
		}
	}
	for _, c := range s.categories {
		if c.ID == in.CategoryID {
			e.CategoryName, e.CategoryNameTe, e.CategoryIcon = c.Name, c.NameTe, c.Icon
		}
	}
	s.expenses = append(s.expenses, e)
	return e.ID
}

func (s *Server) insertCard(in core.CreditCardInput) core.ID {
	s.nextID++
	c := s.cardFrom(s.nextID, in)
	c.CreatedAt = s.now().UTC().Format("2006-01-02 15:04:05")
	s.cards = append(s.cards, c)
	return c.ID
}

func (s *Server) cardFrom(id core.ID, in core.CreditCardInput) core.CreditCard {
	c := core.CreditCard{
		ID:          id,
		ProfileID:   in.ProfileID,
		Name:        in.Name,
		LastFour:    in.LastFour,
		CreditLimit: in.CreditLimit,
		BillingDay:  in.BillingDay,
		Color:       in.Color,
	}
	if c.Color == "" {
		c.Color = core.DefaultCardColor
	}
	for _, p := range s.profiles {
		if p.ID == in.ProfileID {
			c.ProfileName = p.DisplayName
		}
	}
	return c
}
