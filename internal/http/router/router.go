package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/syncfit/syncfit-backend/internal/health"
	"github.com/syncfit/syncfit-backend/internal/http/handler"
	"github.com/syncfit/syncfit-backend/internal/http/middleware"
	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/security"
)

type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	TrackerHandler    *handler.TrackerHandler
	NutritionHandler  *handler.NutritionHandler
	CalculatorHandler *handler.CalculatorHandler
	MilestoneHandler  *handler.MilestoneHandler
	SettingsHandler   *handler.SettingsHandler
	FeedbackHandler   *handler.FeedbackHandler
	JWTManager        *security.JWTManager
	CORSOrigins       []string
	AuthRateLimitRPM  int
	APIRateLimitRPM   int
	// GlobalRateLimiter and AuthRateLimiter override the in-process fixed
	// window with a distributed backend when configured.
	GlobalRateLimiter func(http.Handler) http.Handler
	AuthRateLimiter   func(http.Handler) http.Handler
	Readiness         *health.ProbeRunner
	EnableOTelHTTP    bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	if dep.GlobalRateLimiter != nil {
		r.Use(dep.GlobalRateLimiter)
	} else {
		r.Use(middleware.NewRateLimiter(dep.APIRateLimitRPM, time.Minute, "api").Middleware())
	}

	authLimiter := dep.AuthRateLimiter
	if authLimiter == nil {
		authLimiter = middleware.NewRateLimiter(dep.AuthRateLimitRPM, time.Minute, "auth").Middleware()
	}
	requireAuth := middleware.AuthMiddleware(dep.JWTManager)

	r.Get("/healthz/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz/ready", func(w http.ResponseWriter, r *http.Request) {
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter)
			r.Post("/register/request-code", dep.AuthHandler.RequestRegistrationCode)
			r.Post("/register/complete", dep.AuthHandler.CompleteRegistration)
			r.Post("/login/request-code", dep.AuthHandler.RequestLoginCode)
			r.Post("/login", dep.AuthHandler.Login)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", dep.ProfileHandler.Me)
			r.Patch("/", dep.ProfileHandler.Update)
			r.Delete("/", dep.ProfileHandler.DeleteAccount)
			r.With(authLimiter).Patch("/password", dep.ProfileHandler.ChangePassword)
			// Image upload needs a higher body limit (6MB) than the 1MB global.
			r.With(middleware.BodyLimit(6<<20)).Post("/image", dep.ProfileHandler.UploadImage)
			r.Get("/image", dep.ProfileHandler.ImageURL)
			r.Delete("/image", dep.ProfileHandler.DeleteImage)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.TrackerHandler.LogActivity)
			r.Get("/summary", dep.TrackerHandler.ActivitySummary)
			r.Get("/history", dep.TrackerHandler.ActivityHistory)
			r.Delete("/history", dep.TrackerHandler.ClearActivityHistory)
		})
		r.Route("/weight", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.TrackerHandler.LogWeight)
			r.Get("/history", dep.TrackerHandler.WeightHistory)
			r.Delete("/history", dep.TrackerHandler.ClearWeightHistory)
		})
		r.Route("/steps", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.TrackerHandler.LogSteps)
			r.Get("/today", dep.TrackerHandler.StepsToday)
		})
		r.Route("/nutrition", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.NutritionHandler.Log)
			r.Get("/history", dep.NutritionHandler.History)
		})
		r.Route("/bmi", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.CalculatorHandler.CalculateBMI)
			r.Get("/history", dep.CalculatorHandler.BMIHistory)
		})
		r.Route("/calories", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.CalculatorHandler.CalculateCalories)
			r.Get("/history", dep.CalculatorHandler.CalorieHistory)
		})
		r.Route("/milestones", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", dep.MilestoneHandler.Create)
			r.Get("/", dep.MilestoneHandler.List)
			r.Delete("/{id}", dep.MilestoneHandler.Delete)
			r.Delete("/", dep.MilestoneHandler.DeleteAll)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", dep.SettingsHandler.Get)
			r.Post("/", dep.SettingsHandler.Update)
		})
		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", dep.FeedbackHandler.Submit)
			r.Get("/", dep.FeedbackHandler.Recent)
		})
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
