// Package memory holds map-backed stores with the same tenant scoping and
// error contract as the Postgres repositories. They back service and HTTP
// tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"spendio/internal/models"
	"spendio/internal/repository"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == email {
			return repository.ErrDuplicate
		}
	}
	u := *user
	u.Email = email
	r.users[u.ID] = u
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = updatedAt
	r.users[id] = u
	return nil
}

// SetActive is a test hook; the API never deactivates users.
func (r *UserRepository) SetActive(id uuid.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.IsActive = active
		r.users[id] = u
	}
}

type TokenRepository struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{revoked: make(map[uuid.UUID]time.Time)}
}

func (r *TokenRepository) Revoke(_ context.Context, jti uuid.UUID, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = expiresAt
	return nil
}

func (r *TokenRepository) IsRevoked(_ context.Context, jti uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

type ExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[uuid.UUID]models.Expense
}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{expenses: make(map[uuid.UUID]models.Expense)}
}

func (r *ExpenseRepository) Create(_ context.Context, e *models.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *ExpenseRepository) List(_ context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]*models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.Expense{}
	for _, e := range r.expenses {
		if e.UserID != userID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}
		e := e
		out = append(out, &e)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if filter.Offset >= uint64(len(out)) {
		return []*models.Expense{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && uint64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *ExpenseRepository) Update(_ context.Context, e *models.Expense) (*models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.expenses[e.ID]
	if !ok || current.UserID != e.UserID {
		return nil, repository.ErrNotFound
	}
	current.Amount = e.Amount
	current.Description = e.Description
	current.Category = e.Category
	current.Date = e.Date
	current.UpdatedAt = e.UpdatedAt
	r.expenses[e.ID] = current
	return &current, nil
}

func (r *ExpenseRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

func (r *ExpenseRepository) Totals(_ context.Context, userID uuid.UUID, since, until *time.Time) (float64, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		total float64
		count int
	)
	for _, e := range r.expenses {
		if e.UserID != userID || (since != nil && e.Date.Before(*since)) || (until != nil && !e.Date.Before(*until)) {
			continue
		}
		total += e.Amount
		count++
	}
	return total, count, nil
}

type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[uuid.UUID]models.Category)}
}

func (r *CategoryRepository) Create(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(c.Ownership, c.Name, uuid.Nil) {
		return repository.ErrDuplicate
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepository) EnsureDefault(_ context.Context, c *models.Category) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(models.Shared(), c.Name, uuid.Nil) {
		return false, nil
	}
	row := *c
	row.Ownership = models.Shared()
	r.categories[row.ID] = row
	return true, nil
}

func (r *CategoryRepository) List(_ context.Context, userID uuid.UUID, includeDefault bool) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.Category{}
	for _, c := range r.categories {
		if c.Ownership.MutableBy(userID) || (includeDefault && c.IsDefault()) {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault() != out[j].IsDefault() {
			return out[i].IsDefault()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *CategoryRepository) GetVisible(_ context.Context, userID, id uuid.UUID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok || !c.Ownership.VisibleTo(userID) {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) Update(_ context.Context, userID uuid.UUID, c *models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.categories[c.ID]
	if !ok || !current.Ownership.MutableBy(userID) {
		return nil, repository.ErrNotFound
	}
	if r.nameTaken(current.Ownership, c.Name, c.ID) {
		return nil, repository.ErrDuplicate
	}
	current.Name = c.Name
	current.Description = c.Description
	current.Color = c.Color
	current.Icon = c.Icon
	r.categories[c.ID] = current
	return &current, nil
}

func (r *CategoryRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok || !c.Ownership.MutableBy(userID) {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *CategoryRepository) OwnedNameExists(_ context.Context, userID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nameTaken(models.OwnedBy(userID), name, exclude), nil
}

func (r *CategoryRepository) DefaultNameExists(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nameTaken(models.Shared(), name, uuid.Nil), nil
}

func (r *CategoryRepository) CountVisible(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, c := range r.categories {
		if c.Ownership.VisibleTo(userID) {
			n++
		}
	}
	return n, nil
}

// nameTaken mirrors the partial unique indexes: names are unique per owner
// among owned rows and globally among shared rows.
func (r *CategoryRepository) nameTaken(owner models.Ownership, name string, exclude uuid.UUID) bool {
	for id, c := range r.categories {
		if id == exclude || c.Name != name {
			continue
		}
		if c.Ownership == owner {
			return true
		}
	}
	return false
}

type BudgetRepository struct {
	mu      sync.RWMutex
	budgets map[uuid.UUID]models.Budget
}

func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{budgets: make(map[uuid.UUID]models.Budget)}
}

func (r *BudgetRepository) Create(_ context.Context, b *models.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets[b.ID] = *b
	return nil
}

func (r *BudgetRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BudgetRepository) List(_ context.Context, userID uuid.UUID, activeOnly bool) ([]*models.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.Budget{}
	for _, b := range r.budgets {
		if b.UserID != userID || (activeOnly && !b.IsActive) {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BudgetRepository) Update(_ context.Context, b *models.Budget) (*models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.budgets[b.ID]
	if !ok || current.UserID != b.UserID {
		return nil, repository.ErrNotFound
	}
	current.Name = b.Name
	current.Amount = b.Amount
	current.Spent = b.Spent
	current.Period = b.Period
	current.StartDate = b.StartDate
	current.EndDate = b.EndDate
	current.CategoryID = b.CategoryID
	current.UpdatedAt = b.UpdatedAt
	r.budgets[b.ID] = current
	return &current, nil
}

func (r *BudgetRepository) ToggleActive(_ context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	b.IsActive = !b.IsActive
	b.UpdatedAt = time.Now().UTC()
	r.budgets[id] = b
	return &b, nil
}

func (r *BudgetRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.budgets[id]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.budgets, id)
	return nil
}

func (r *BudgetRepository) CountActive(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.budgets {
		if b.UserID == userID && b.IsActive {
			n++
		}
	}
	return n, nil
}

type GoalRepository struct {
	mu    sync.Mutex
	goals map[uuid.UUID]models.Goal
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{goals: make(map[uuid.UUID]models.Goal)}
}

func (r *GoalRepository) Create(_ context.Context, g *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[g.ID] = *g
	return nil
}

func (r *GoalRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *GoalRepository) List(_ context.Context, userID uuid.UUID, achieved *bool) ([]*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*models.Goal{}
	for _, g := range r.goals {
		if g.UserID != userID || (achieved != nil && g.IsAchieved != *achieved) {
			continue
		}
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsAchieved != out[j].IsAchieved {
			return !out[i].IsAchieved
		}
		if !out[i].TargetDate.Equal(out[j].TargetDate) {
			return out[i].TargetDate.Before(out[j].TargetDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// Modify holds the store lock for the whole read-modify-write, which gives
// the same serialisation as the row lock in Postgres.
func (r *GoalRepository) Modify(_ context.Context, userID, id uuid.UUID, fn func(g *models.Goal) error) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	working := g
	if err := fn(&working); err != nil {
		return nil, err
	}
	working.ID = g.ID
	working.UserID = g.UserID
	r.goals[id] = working
	return &working, nil
}

func (r *GoalRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *GoalRepository) CountUnachieved(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, g := range r.goals {
		if g.UserID == userID && !g.IsAchieved {
			n++
		}
	}
	return n, nil
}
