package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/hynox/internal/admin"
	admindomain "github.com/smallbiznis/hynox/internal/admin/domain"
	"github.com/smallbiznis/hynox/internal/auth"
	authdomain "github.com/smallbiznis/hynox/internal/auth/domain"
	"github.com/smallbiznis/hynox/internal/auth/session"
	"github.com/smallbiznis/hynox/internal/catalog"
	catalogdomain "github.com/smallbiznis/hynox/internal/catalog/domain"
	"github.com/smallbiznis/hynox/internal/client"
	clientdomain "github.com/smallbiznis/hynox/internal/client/domain"
	"github.com/smallbiznis/hynox/internal/company"
	companydomain "github.com/smallbiznis/hynox/internal/company/domain"
	"github.com/smallbiznis/hynox/internal/config"
	"github.com/smallbiznis/hynox/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/hynox/internal/dashboard/domain"
	"github.com/smallbiznis/hynox/internal/invoice"
	invoicedomain "github.com/smallbiznis/hynox/internal/invoice/domain"
	"github.com/smallbiznis/hynox/internal/observability"
	obsmiddleware "github.com/smallbiznis/hynox/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/hynox/internal/observability/metrics"
	obstracing "github.com/smallbiznis/hynox/internal/observability/tracing"
	"github.com/smallbiznis/hynox/internal/quotation"
	quotationdomain "github.com/smallbiznis/hynox/internal/quotation/domain"
	"github.com/smallbiznis/hynox/internal/ratelimit"
	"github.com/smallbiznis/hynox/internal/settings"
	settingsdomain "github.com/smallbiznis/hynox/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	auth.Module,
	admin.Module,
	client.Module,
	catalog.Module,
	invoice.Module,
	quotation.Module,
	company.Module,
	settings.Module,
	dashboard.Module,
	ratelimit.Module,
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, s *Server, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log = log.Named("http.server")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	authsvc      authdomain.Service
	sessions     *session.Manager
	loginLimiter *ratelimit.LoginLimiter
	adminSvc     admindomain.Service
	clientSvc    clientdomain.Service
	catalogSvc   catalogdomain.Service
	invoiceSvc   invoicedomain.Service
	quotationSvc quotationdomain.Service
	companySvc   companydomain.Service
	settingsSvc  settingsdomain.Service
	dashboardSvc dashboarddomain.Service
	obsMetrics   *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Authsvc      authdomain.Service
	Sessions     *session.Manager
	AdminSvc     admindomain.Service
	ClientSvc    clientdomain.Service
	CatalogSvc   catalogdomain.Service
	InvoiceSvc   invoicedomain.Service
	QuotationSvc quotationdomain.Service
	CompanySvc   companydomain.Service
	SettingsSvc  settingsdomain.Service
	DashboardSvc dashboarddomain.Service
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
	ObsMetrics   *obsmetrics.Metrics     `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		loginLimiter: p.LoginLimiter,
		adminSvc:     p.AdminSvc,
		clientSvc:    p.ClientSvc,
		catalogSvc:   p.CatalogSvc,
		invoiceSvc:   p.InvoiceSvc,
		quotationSvc: p.QuotationSvc,
		companySvc:   p.CompanySvc,
		settingsSvc:  p.SettingsSvc,
		dashboardSvc: p.DashboardSvc,
		obsMetrics:   p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	auth.POST("/login", s.LoginRateLimit(), s.Login)
	auth.POST("/set-cookie", s.SetCookie)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	// -------- Services --------
	api.GET("/services", s.ListServiceItems)
	api.POST("/services", s.CreateServiceItem)
	api.GET("/services/:id", s.GetServiceItemByID)
	api.PUT("/services/:id", s.UpdateServiceItem)
	api.DELETE("/services/:id", s.DeleteServiceItem)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	// -------- Quotations --------
	api.GET("/quotations", s.ListQuotations)
	api.POST("/quotations", s.CreateQuotation)
	api.GET("/quotations/:id", s.GetQuotationByID)
	api.PUT("/quotations/:id", s.UpdateQuotation)
	api.PATCH("/quotations/:id/status", s.UpdateQuotationStatus)
	api.DELETE("/quotations/:id", s.DeleteQuotation)

	// -------- Admins --------
	api.GET("/admins", s.ListAdmins)
	api.POST("/admins", s.CreateAdmin)
	api.GET("/admins/:id", s.GetAdminByID)
	api.PUT("/admins/:id", s.UpdateAdmin)
	api.DELETE("/admins/:id", s.DeleteAdmin)

	// -------- Singletons --------
	api.GET("/company", s.GetCompany)
	api.POST("/company", s.UpsertCompany)
	api.GET("/settings", s.GetSettings)
	api.POST("/settings", s.MergeSettings)

	api.GET("/dashboard/stats", s.GetDashboardStats)
}
