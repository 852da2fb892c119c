package api

import (
	"net/http"

	"github.com/rs/cors"

	"eduagri-backend/internal/config"
	"eduagri-backend/internal/database"
	"eduagri-backend/internal/handlers"
	"eduagri-backend/internal/middleware"
	"eduagri-backend/internal/models"
	"eduagri-backend/internal/token"
	"eduagri-backend/utils/response"
)

// NewRouter wires every route, with the auth middleware in front of the
// protected ones.
func NewRouter(db *database.DB, cfg *config.Config) http.Handler {
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(issuer)

	authHandler := handlers.NewAuthHandler(db, issuer)
	enrollmentHandler := handlers.NewEnrollmentHandler(db)
	farmerOrderHandler := handlers.NewOrderHandler(db, models.OrderKindFarmer)
	customerOrderHandler := handlers.NewOrderHandler(db, models.OrderKindCustomer)

	router := http.NewServeMux()

	router.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	router.HandleFunc("POST /api/register", authHandler.Register)
	router.HandleFunc("POST /api/login", authHandler.Login)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAuth(h)
	}

	router.Handle("GET /api/me", requireAuth(authHandler.Me))

	router.Handle("GET /api/enrollments", requireAuth(enrollmentHandler.List))
	router.Handle("POST /api/enroll", requireAuth(enrollmentHandler.Enroll))
	router.Handle("DELETE /api/enrollments/{courseTitle}", requireAuth(enrollmentHandler.Unenroll))

	router.Handle("POST /api/farmer-orders", requireAuth(farmerOrderHandler.Create))
	router.Handle("GET /api/farmer-orders", requireAuth(farmerOrderHandler.List))
	router.Handle("POST /api/customer-orders", requireAuth(customerOrderHandler.Create))
	router.Handle("GET /api/customer-orders", requireAuth(customerOrderHandler.List))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return middleware.Logging(c.Handler(router))
}
