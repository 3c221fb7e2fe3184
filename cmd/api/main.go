package main

import (
	_ "eventgear/docs"
	"eventgear/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           EventGear Rental API
// @version         1.0
// @description     Event equipment rental bookings with M-Pesa STK Push payments, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

func main() {
	routes.Run()
}
