package api

import (
	"errors"
	"time"

	_ "spendio/docs"
	"spendio/internal/api/handlers"
	"spendio/internal/dto"
	"spendio/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Expense   *handlers.ExpenseHandler
	Category  *handlers.CategoryHandler
	Budget    *handlers.BudgetHandler
	Goal      *handlers.GoalHandler
	Analytics *handlers.AnalyticsHandler
	Health    *handlers.HealthHandler
}

type RouterConfig struct {
	AllowOrigins string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AuthRateLimit caps register/login/refresh calls per client IP and
	// minute. Zero disables the limiter.
	AuthRateLimit int
}

func SetupRouter(
	cfg RouterConfig,
	h Handlers,
	authenticator middleware.Authenticator,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "spendio",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			} else {
				appLogger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: message})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Get("/health", h.Health.Health)

	// Public auth routes
	public := api.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		public.Use(limiter.New(limiter.Config{
			Max:        cfg.AuthRateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				// Only the credential endpoints are throttled.
				switch c.Path() {
				case "/api/auth/register", "/api/auth/login", "/api/auth/refresh":
					return false
				}
				return true
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Error: "too many requests"})
			},
		}))
	}
	public.Post("/register", h.Auth.Register)
	public.Post("/login", h.Auth.Login)
	public.Post("/refresh", h.Auth.RefreshToken)

	guard := middleware.AuthMiddleware(authenticator, handlers.IsAuthError, appLogger)

	account := api.Group("/auth", guard)
	account.Get("/me", h.Auth.Me)
	account.Post("/logout", h.Auth.Logout)
	account.Put("/change-password", h.Auth.ChangePassword)

	expenses := api.Group("/expenses", guard)
	expenses.Get("", h.Expense.ListExpenses)
	expenses.Post("", h.Expense.CreateExpense)
	expenses.Get("/:id", h.Expense.GetExpense)
	expenses.Put("/:id", h.Expense.UpdateExpense)
	expenses.Delete("/:id", h.Expense.DeleteExpense)

	categories := api.Group("/categories", guard)
	categories.Get("", h.Category.ListCategories)
	categories.Post("", h.Category.CreateCategory)
	categories.Put("/:id", h.Category.UpdateCategory)
	categories.Delete("/:id", h.Category.DeleteCategory)

	budgets := api.Group("/budgets", guard)
	budgets.Get("", h.Budget.ListBudgets)
	budgets.Post("", h.Budget.CreateBudget)
	budgets.Get("/:id", h.Budget.GetBudget)
	budgets.Put("/:id", h.Budget.UpdateBudget)
	budgets.Patch("/:id/toggle", h.Budget.ToggleBudget)
	budgets.Delete("/:id", h.Budget.DeleteBudget)

	goals := api.Group("/goals", guard)
	goals.Get("", h.Goal.ListGoals)
	goals.Post("", h.Goal.CreateGoal)
	goals.Get("/:id", h.Goal.GetGoal)
	goals.Put("/:id", h.Goal.UpdateGoal)
	goals.Patch("/:id/add-money", h.Goal.AddMoney)
	goals.Patch("/:id/withdraw", h.Goal.Withdraw)
	goals.Delete("/:id", h.Goal.DeleteGoal)

	analytics := api.Group("/analytics", guard)
	analytics.Get("/dashboard", h.Analytics.Dashboard)
	analytics.Get("/expenses-by-category", h.Analytics.ExpensesByCategory)
	analytics.Get("/monthly-expenses", h.Analytics.MonthlyExpenses)
	analytics.Get("/budget-status", h.Analytics.BudgetStatus)
	analytics.Get("/goals-progress", h.Analytics.GoalsProgress)

	return app
}
