package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hotelchain-backend/config"
	"hotelchain-backend/controllers"
	"hotelchain-backend/routes"
	"hotelchain-backend/services"
	"hotelchain-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// .env is optional; plain env vars still apply.
	}
	utils.InitLogger()

	if err := config.ConnectDatabase(); err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	db := config.DB
	log.Info().Msg("database connection established")

	router := routes.SetupRouter(routes.Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(db)),
		Hotel:       controllers.NewHotelController(services.NewHotelService(db)),
		Room:        controllers.NewRoomController(services.NewRoomService(db)),
		RoomType:    controllers.NewRoomTypeController(services.NewRoomTypeService(db)),
		Guest:       controllers.NewGuestController(services.NewGuestService(db)),
		Reservation: controllers.NewReservationController(services.NewReservationService(db)),
		Transaction: controllers.NewTransactionController(services.NewTransactionService(db)),
		Report:      controllers.NewReportController(services.NewReportService(db)),
		Dashboard:   controllers.NewDashboardController(services.NewDashboardService(db)),
		User:        controllers.NewUserController(services.NewUserService(db)),
	})

	port := utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
