package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"wastelink-checkout-gateway/internal/client"
	"wastelink-checkout-gateway/internal/handler"
	"wastelink-checkout-gateway/internal/middleware"
	"wastelink-checkout-gateway/internal/service"
	"wastelink-checkout-gateway/internal/session"
)

type Server struct {
	echo            *echo.Echo
	sessions        *session.Manager
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	proxyHandler    *handler.ProxyHandler
}

func NewServer(sessions *session.Manager, checkoutService service.CheckoutService, upstream client.UpstreamClient) *Server {
	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	s := &Server{
		echo:            e,
		sessions:        sessions,
		cartHandler:     handler.NewCartHandler(),
		checkoutHandler: handler.NewCheckoutHandler(sessions, checkoutService),
		proxyHandler:    handler.NewProxyHandler(upstream),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/login", s.proxyHandler.Login)
	auth.POST("/register", s.proxyHandler.Register)

	// catalog: auth optional, forwarded when present
	api.GET("/products", s.proxyHandler.ListProducts, middleware.OptionalBearer())

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("/sessions", s.checkoutHandler.CreateSession)

	cart := checkout.Group("/cart", middleware.CheckoutSession(s.sessions))
	cart.GET("", s.cartHandler.GetCart)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PATCH("/items/:id", s.cartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", s.cartHandler.RemoveItem)

	submit := checkout.Group("", middleware.CheckoutSession(s.sessions), middleware.RequireBearer())
	submit.POST("/submit", s.checkoutHandler.SubmitCart)
	submit.POST("/purchase", s.checkoutHandler.SubmitPurchase)

	// -------- citizen portal --------
	citizens := api.Group("/citizens", middleware.RequireBearer())
	citizens.GET("/orders", s.proxyHandler.ListOrders)
	citizens.GET("/collections", s.proxyHandler.ListCollections)
	citizens.POST("/collections", s.proxyHandler.RequestCollection)
	citizens.GET("/complaints", s.proxyHandler.ListComplaints)
	citizens.POST("/complaints", s.proxyHandler.SubmitComplaint)

	// -------- admin portal --------
	admin := api.Group("/admin", middleware.RequireBearer())
	admin.GET("/:resource", s.proxyHandler.AdminList)
	admin.POST("/:resource", s.proxyHandler.AdminCreate)
	admin.PUT("/:resource/:id", s.proxyHandler.AdminUpdate)
	admin.DELETE("/:resource/:id", s.proxyHandler.AdminDelete)

	// -------- collector portal --------
	collectors := api.Group("/collectors", middleware.RequireBearer())
	collectors.GET("/requests", s.proxyHandler.ListCollectorRequests)
	collectors.PUT("/requests/:id/accept", s.proxyHandler.AcceptCollectorRequest)
	collectors.PUT("/requests/:id/complete", s.proxyHandler.CompleteCollectorRequest)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Handler exposes the underlying mux for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
