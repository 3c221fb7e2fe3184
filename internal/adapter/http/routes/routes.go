package routes

import (
	"log"
	"os"

	_ "eventgear/docs" // This will be auto-generated
	"eventgear/internal/adapter/http/handlers"
	repository2 "eventgear/internal/adapter/persistence/repository"
	"eventgear/internal/infrastructure/database"
	"eventgear/internal/infrastructure/payments"
	"eventgear/internal/usecase"
	"eventgear/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = "8080"

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	bookingRepo := repository2.NewBookingDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)

	var gateway interfaces.IPaymentGateway
	mpesaGateway, err := payments.NewMpesaGateway(payments.NewMpesaConfigFromEnv())
	if err != nil {
		log.Printf("M-Pesa gateway not configured: %v", err)
	} else {
		gateway = mpesaGateway
	}

	bookingUseCase := usecase.NewBookingUseCase(bookingRepo)
	pushUseCase := usecase.NewPaymentPushUseCase(paymentRepo, bookingRepo, gateway)
	callbackUseCase := usecase.NewPaymentCallbackUseCase(paymentRepo, bookingRepo)

	bookingHandler := handlers.NewBookingHandler(bookingUseCase)
	paymentHandler := handlers.NewPaymentHandler(pushUseCase, callbackUseCase)

	api := router.Group("/api")
	addPingRoutes(api)
	addRentalRoutes(api, bookingHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
