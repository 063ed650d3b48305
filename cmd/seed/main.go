package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"spendio/internal/dto"
	"spendio/internal/models"
	"spendio/internal/repository"
	"spendio/internal/service"
	"spendio/pkg/auth"
	"spendio/pkg/config"
	"spendio/pkg/logger"
	"spendio/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const demoPassword = "password123"

const usage = `usage: seed <command>

commands:
  migrate   apply pending schema migrations
  seed      insert missing default categories
  demo      create demo users with expenses, budgets and goals
  check     print row counts per table
  reset     truncate every table, then reseed default categories`

type app struct {
	maintenance *repository.MaintenanceRepository
	users       *repository.UserRepository
	auth        *service.AuthService
	categories  *service.CategoryService
	expenses    *service.ExpenseService
	budgets     *service.BudgetService
	goals       *service.GoalService
	logger      *zap.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.IsDevelopment()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if command == "migrate" {
		if err := postgres.Migrate(&cfg.Database, appLogger); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
		return
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Demo accounts only need a signature to be created, never verified.
	secret, err := auth.RandomSecret()
	if err != nil {
		appLogger.Fatal("Failed to generate signing key", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	a := &app{
		maintenance: repository.NewMaintenanceRepository(db, appLogger),
		users:       userRepo,
		auth: service.NewAuthService(userRepo, nil,
			auth.NewJWTManager(secret, time.Minute, time.Minute),
			auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency),
			appLogger),
		categories: service.NewCategoryService(categoryRepo, cfg.Category.AllowDefaultNameCollision, appLogger),
		expenses:   service.NewExpenseService(repository.NewExpenseRepository(db, appLogger), appLogger),
		budgets:    service.NewBudgetService(repository.NewBudgetRepository(db, appLogger), categoryRepo, appLogger),
		goals:      service.NewGoalService(repository.NewGoalRepository(db, appLogger), appLogger),
		logger:     appLogger,
	}

	switch command {
	case "seed":
		err = a.seed(ctx)
	case "demo":
		err = a.demo(ctx, time.Now().UTC())
	case "check":
		err = a.check(ctx)
	case "reset":
		err = a.reset(ctx)
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
	if err != nil {
		appLogger.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}

func (a *app) seed(ctx context.Context) error {
	added, err := a.categories.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("default categories added: %d\n", added)
	return nil
}

func (a *app) check(ctx context.Context) error {
	counts, err := a.maintenance.RowCounts(ctx)
	if err != nil {
		return err
	}
	tables := make([]string, 0, len(counts))
	for t := range counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		fmt.Printf("%-15s %d\n", t, counts[t])
	}
	return nil
}

func (a *app) reset(ctx context.Context) error {
	if err := a.maintenance.Truncate(ctx); err != nil {
		return err
	}
	return a.seed(ctx)
}

type demoExpense struct {
	amount      float64
	description string
	category    string
	daysAgo     int
}

type demoBudget struct {
	name     string
	amount   float64
	spent    float64
	category string
}

type demoGoal struct {
	title       string
	description string
	target      float64
	saved       float64
	monthsAhead int
}

type demoUser struct {
	email, name string
	expenses    []demoExpense
	budgets     []demoBudget
	goals       []demoGoal
}

var demoUsers = []demoUser{
	{
		email: "test@example.com",
		name:  "Test User",
		expenses: []demoExpense{
			{850, "Weekly groceries", "Food", 1},
			{1200, "Supermarket run", "Food", 3},
			{450, "Bread and milk", "Food", 5},
			{180, "Metro", "Transport", 2},
			{350, "Taxi home", "Transport", 4},
			{450, "Cinema with friends", "Entertainment", 6},
			{800, "Concert", "Entertainment", 15},
			{2500, "Programming course", "Education", 20},
			{280, "Gift for a friend", "Other", 18},
		},
		budgets: []demoBudget{
			{"Groceries this month", 5000, 3280, "Food"},
			{"Going out", 2000, 1570, "Entertainment"},
		},
		goals: []demoGoal{
			{"New laptop", "A laptop for study", 35000, 12500, 6},
			{"Vacation", "Summer trip", 25000, 8300, 9},
		},
	},
	{
		email: "anna.ivanova@example.com",
		name:  "Anna Ivanova",
		expenses: []demoExpense{
			{1500, "Weekly shop", "Food", 1},
			{2800, "Bulk shopping", "Food", 7},
			{1200, "Fuel", "Transport", 2},
			{450, "Parking downtown", "Transport", 5},
			{1800, "Dentist", "Health", 12},
			{650, "Pharmacy", "Health", 8},
			{2100, "Utilities", "Bills", 1},
			{2050, "Utilities", "Bills", 31},
			{2180, "Utilities", "Bills", 61},
		},
		budgets: []demoBudget{
			{"Family groceries", 8000, 6940, "Food"},
			{"Transport", 3000, 2450, "Transport"},
			{"Utilities", 2500, 2100, "Bills"},
		},
		goals: []demoGoal{
			{"Kindergarten", "Private kindergarten fees", 50000, 32000, 4},
			{"Family car", "", 200000, 85000, 18},
		},
	},
}

// demo creates the demo accounts through the services, so every row goes
// through the same validation as API traffic. It refuses to run on a
// database that already has users.
func (a *app) demo(ctx context.Context, now time.Time) error {
	n, err := a.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Printf("database already has %d users; run reset first\n", n)
		return nil
	}

	if err := a.seed(ctx); err != nil {
		return err
	}

	categoryIDs, err := a.defaultCategoryIDs(ctx)
	if err != nil {
		return err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	for _, du := range demoUsers {
		user, err := a.auth.Register(ctx, &dto.RegisterRequest{Email: du.email, Password: demoPassword, Name: du.name})
		if err != nil {
			return fmt.Errorf("register %s: %w", du.email, err)
		}
		userID := uuid.MustParse(user.ID)

		for _, e := range du.expenses {
			if _, err := a.expenses.Create(ctx, userID, &dto.ExpenseRequest{
				Amount:      e.amount,
				Description: e.description,
				Category:    e.category,
				Date:        now.AddDate(0, 0, -e.daysAgo).Format(models.DateLayout),
			}); err != nil {
				return fmt.Errorf("expense for %s: %w", du.email, err)
			}
		}

		for _, b := range du.budgets {
			req := &dto.BudgetRequest{
				Name:      b.name,
				Amount:    b.amount,
				Period:    string(models.BudgetPeriodMonthly),
				StartDate: monthStart.Format(models.DateLayout),
				EndDate:   monthEnd.Format(models.DateLayout),
			}
			if id, ok := categoryIDs[b.category]; ok {
				req.CategoryID = &id
			}
			created, err := a.budgets.Create(ctx, userID, req)
			if err != nil {
				return fmt.Errorf("budget for %s: %w", du.email, err)
			}
			spent := b.spent
			req.Spent = &spent
			if _, err := a.budgets.Update(ctx, userID, uuid.MustParse(created.ID), req); err != nil {
				return fmt.Errorf("budget spent for %s: %w", du.email, err)
			}
		}

		for _, g := range du.goals {
			req := &dto.GoalCreateRequest{
				Title:        g.title,
				TargetAmount: g.target,
				TargetDate:   now.AddDate(0, g.monthsAhead, 0).Format(models.DateLayout),
			}
			if g.description != "" {
				desc := g.description
				req.Description = &desc
			}
			created, err := a.goals.Create(ctx, userID, req)
			if err != nil {
				return fmt.Errorf("goal for %s: %w", du.email, err)
			}
			if _, err := a.goals.AddMoney(ctx, userID, uuid.MustParse(created.ID), &dto.GoalMoneyRequest{Amount: g.saved}); err != nil {
				return fmt.Errorf("goal deposit for %s: %w", du.email, err)
			}
		}

		a.logger.Info("Demo user created", zap.String("email", du.email))
	}

	fmt.Println("demo accounts (password " + demoPassword + "):")
	for _, du := range demoUsers {
		fmt.Printf("  %s  %s\n", du.email, du.name)
	}
	return nil
}

func (a *app) defaultCategoryIDs(ctx context.Context) (map[string]string, error) {
	// Any user id sees the shared defaults.
	categories, err := a.categories.List(ctx, uuid.Nil, true)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(categories))
	for _, c := range categories {
		if c.IsDefault {
			ids[c.Name] = c.ID
		}
	}
	return ids, nil
}
