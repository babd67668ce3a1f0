package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ShikhaMathur02/Visitor-System/config"
	"github.com/ShikhaMathur02/Visitor-System/internal/api/handler"
	"github.com/ShikhaMathur02/Visitor-System/internal/api/middleware"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
	"github.com/ShikhaMathur02/Visitor-System/pkg/metrics"
	"github.com/ShikhaMathur02/Visitor-System/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1MB

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Metrics(m))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── notification stream ──
	r.GET("/ws", h.WS.Serve)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// faculty directory feeds the visitor entry form at the kiosk
		v1.GET("/faculty", h.User.ListFaculty)
		v1.GET("/faculty/department/:department", h.User.ListFacultyByDepartment)

		// gate kiosks run unauthenticated; the rate limiter is the
		// only guard against abuse
		kiosk := middleware.RateLimit(rdb, 30, time.Minute)

		// visitors: faculty members approve the exits of their own
		// visitors, the director can step in
		mountEntryRoutes(v1, h, model.KindVisitor, "/visitors", kiosk, jwtMgr, rdb,
			[]string{model.RoleFaculty, model.RoleDirector, model.RoleAdmin})

		// students: only the director approves
		mountEntryRoutes(v1, h, model.KindStudent, "/students", kiosk, jwtMgr, rdb,
			[]string{model.RoleDirector, model.RoleAdmin})

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// dashboard stats
			authorized.GET("/stats/today",
				middleware.RoleAuth(model.RoleDirector, model.RoleAdmin),
				h.Stats.Today)

			// administration
			admin := authorized.Group("/admin", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("/users", h.User.Create)
				admin.GET("/users", h.User.List)
				admin.GET("/users/:id", h.User.Get)
				admin.PUT("/users/:id", h.User.Update)
				admin.DELETE("/users/:id", h.User.Delete)

				admin.GET("/entries/:id", h.Entry.Get)
				admin.DELETE("/entries/:id", h.Entry.Delete)

				admin.GET("/metrics", gin.WrapH(promhttp.Handler()))
			}
		}
	}

	return r
}

// mountEntryRoutes wires one record kind's workflow under its prefix.
// approveRoles lists who may approve exits for this kind.
func mountEntryRoutes(
	v1 *gin.RouterGroup,
	h *handler.Handler,
	kind model.EntryKind,
	prefix string,
	kiosk gin.HandlerFunc,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	approveRoles []string,
) {
	g := v1.Group(prefix)

	// kiosk endpoints, no login required
	g.POST("/entry", kiosk, h.Entry.Register(kind))
	g.POST("/request-exit", kiosk, h.Entry.RequestExit(kind))

	// staff endpoints
	staff := g.Group("", middleware.JWTAuth(jwtMgr, rdb))
	{
		staff.POST("/approve-exit",
			middleware.RoleAuth(approveRoles...),
			h.Entry.ApproveExit(kind))
		staff.POST("/confirm-exit",
			middleware.RoleAuth(model.RoleGuard, model.RoleAdmin),
			h.Entry.ConfirmExit(kind))

		staff.GET("/active/:identity", h.Entry.Active(kind))
		staff.GET("/pending-exits",
			middleware.RoleAuth(approveRoles...),
			h.Entry.Pending(kind))
		staff.GET("/approved-exits",
			middleware.RoleAuth(model.RoleGuard, model.RoleDirector, model.RoleAdmin),
			h.Entry.Approved(kind))
		staff.GET("/daily-records", h.Entry.Daily(kind))
		staff.GET("/exited-today", h.Entry.ExitedToday(kind))
	}
}
