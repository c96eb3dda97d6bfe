package router

import (
	"net/http"

	"homewares/internal/handler"
	"homewares/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	lifecycleHandler *handler.LifecycleHandler,
	deliveryHandler *handler.DeliveryHandler,
	paymentHandler *handler.PaymentHandler,
	returnsHandler *handler.ReturnsHandler,
	reportHandler *handler.ReportHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Orders
	mux.HandleFunc("POST /api/orders", orderHandler.Create)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("GET /api/orders/{id}/history", orderHandler.History)

	// Lifecycle
	mux.HandleFunc("POST /api/orders/bulk-transition", lifecycleHandler.BulkTransition)
	mux.HandleFunc("POST /api/orders/{id}/transition", lifecycleHandler.Transition)
	mux.HandleFunc("POST /api/orders/{id}/notes", lifecycleHandler.AddNote)
	mux.HandleFunc("POST /api/orders/{id}/shipping-label", lifecycleHandler.ShippingLabel)

	// Payments
	mux.HandleFunc("POST /api/orders/{id}/verify-payment", paymentHandler.Verify)

	// Delivery tracking
	mux.HandleFunc("POST /api/orders/{id}/delivery", deliveryHandler.Upsert)
	mux.HandleFunc("GET /api/orders/{id}/delivery", deliveryHandler.Get)

	// Returns
	mux.HandleFunc("POST /api/returns", returnsHandler.Create)
	mux.HandleFunc("POST /api/returns/{id}/process", returnsHandler.Process)

	// Reports
	mux.HandleFunc("GET /api/reports/{kind}", reportHandler.Get)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
