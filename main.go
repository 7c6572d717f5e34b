package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/config"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/handlers"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/routes"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/utils"
)

func collectionName(envKey, fallback string) string {
	if name := os.Getenv(envKey); name != "" {
		return name
	}
	return fallback
}

func buildStores() (store.ReportStore, store.CounterReportStore, store.AccommodationStore, store.UserStore, store.OTPStore) {
	// Demo mode keeps everything in process; never the authoritative
	// store.
	if os.Getenv("USE_MEMORY_STORE") == "1" {
		log.Println("Using in-memory store (demo mode)")
		mem := store.NewMemoryStore()
		return mem.Reports(), mem.Counters(), mem.Accommodations(), mem.Users(), mem.OTPs()
	}

	config.ConnectDB()
	utils.InitRedis()

	reports := store.NewMongoReportStore(config.GetCollection(collectionName("MONGODB_COLLECTION_REPORTS", "reports")))
	counters := store.NewMongoCounterReportStore(config.GetCollection(collectionName("MONGODB_COLLECTION_COUNTER_REPORTS", "counter_reports")))
	accommodations := store.NewMongoAccommodationStore(config.GetCollection(collectionName("MONGODB_COLLECTION_ACCOMMODATIONS", "accommodations")))
	users := store.NewMongoUserStore(config.GetCollection(collectionName("MONGODB_COLLECTION_USERS", "users")))
	otps := store.NewRedisOTPStore(utils.RedisClient)
	return reports, counters, accommodations, users, otps
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	reports, counters, accommodations, users, otps := buildStores()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Cloudinary disabled: %v", err)
	}

	service := safety.New(reports, counters, accommodations, users)

	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	routes.RegisterRoutes(e, users, routes.Controllers{
		Auth:          handlers.NewAuthController(users, otps),
		Reports:       handlers.NewReportController(service),
		Accommodation: handlers.NewAccommodationController(service),
		Counters:      handlers.NewCounterController(service),
		Admin:         handlers.NewAdminController(service),
		Upload:        handlers.NewUploadController(),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
