package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotelchain-backend/controllers"
	"hotelchain-backend/middleware"
	"hotelchain-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles everything SetupRouter needs.
type Controllers struct {
	Auth        *controllers.AuthController
	Hotel       *controllers.HotelController
	Room        *controllers.RoomController
	RoomType    *controllers.RoomTypeController
	Guest       *controllers.GuestController
	Reservation *controllers.ReservationController
	Transaction *controllers.TransactionController
	Report      *controllers.ReportController
	Dashboard   *controllers.DashboardController
	User        *controllers.UserController
}

// SetupRouter wires the HTTP surface. Read access is open to any
// authenticated staff member; writes are gated per resource on the role
// hierarchy.
func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", ctl.Auth.Signup)
			auth.POST("/signin", ctl.Auth.Signin)
			auth.POST("/signout", ctl.Auth.Signout)
			auth.GET("/me", middleware.RequireAuth(), ctl.Auth.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			hotels := protected.Group("/hotels")
			{
				hotels.GET("", ctl.Hotel.List)
				hotels.POST("", middleware.RequireMinimumRole(models.RoleSuperAdmin), ctl.Hotel.Create)
				hotels.PUT("/:id", middleware.RequireMinimumRole(models.RoleSuperAdmin), ctl.Hotel.Update)
			}

			rooms := protected.Group("/rooms")
			{
				rooms.GET("", ctl.Room.List)
				rooms.POST("", middleware.RequireMinimumRole(models.RoleManager), ctl.Room.Create)
				rooms.PUT("/:id", middleware.RequireMinimumRole(models.RoleReceptionist), ctl.Room.Update)
				rooms.DELETE("/:id", middleware.RequireMinimumRole(models.RoleManager), ctl.Room.Delete)
			}

			roomTypes := protected.Group("/room-types")
			{
				roomTypes.GET("", ctl.RoomType.List)
				roomTypes.POST("", middleware.RequireMinimumRole(models.RoleManager), ctl.RoomType.Create)
				roomTypes.PUT("/:id", middleware.RequireMinimumRole(models.RoleManager), ctl.RoomType.Update)
				roomTypes.DELETE("/:id", middleware.RequireMinimumRole(models.RoleManager), ctl.RoomType.Delete)
			}

			guests := protected.Group("/guests")
			{
				guests.GET("", ctl.Guest.List)
				guests.POST("", middleware.RequireMinimumRole(models.RoleReceptionist), ctl.Guest.Create)
			}

			reservations := protected.Group("/reservations")
			{
				reservations.GET("", ctl.Reservation.List)
				reservations.GET("/:id", ctl.Reservation.Get)
				reservations.GET("/:id/statement", ctl.Reservation.Statement)
				reservations.GET("/:id/charges", ctl.Reservation.ListCharges)

				writes := reservations.Group("")
				writes.Use(middleware.RequireMinimumRole(models.RoleReceptionist))
				{
					writes.POST("", ctl.Reservation.Create)
					writes.PUT("/:id", ctl.Reservation.Update)
					writes.PATCH("/:id/status", ctl.Reservation.UpdateStatus)
					writes.POST("/:id/charges", ctl.Reservation.AddCharge)
				}
				reservations.DELETE("/:id", middleware.RequireMinimumRole(models.RoleManager), ctl.Reservation.Delete)
			}

			transactions := protected.Group("/transactions")
			{
				transactions.GET("", ctl.Transaction.List)
				transactions.POST("", middleware.RequireMinimumRole(models.RoleReceptionist), ctl.Transaction.Create)
			}

			reports := protected.Group("/reports")
			reports.Use(middleware.RequireMinimumRole(models.RoleManager))
			{
				reports.GET("", ctl.Report.Generate)
				reports.POST("", ctl.Report.Save)
			}

			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", ctl.Dashboard.Stats)
				dashboard.GET("/chain", ctl.Dashboard.ChainStats)
			}

			users := protected.Group("/users")
			users.Use(middleware.RequireMinimumRole(models.RoleHotelAdmin))
			{
				users.GET("", ctl.User.List)
				users.GET("/:id", ctl.User.Get)
				users.POST("", ctl.User.Create)
				users.PUT("/:id", ctl.User.Update)
				users.DELETE("/:id", ctl.User.Delete)
			}
		}
	}

	return r
}
