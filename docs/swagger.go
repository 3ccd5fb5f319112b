// Package docs provides Swagger documentation for the API.
package docs

// @title Marketing Ops Backend API
// @version 1.0
// @description Ad-campaign approval and lifecycle orchestration API for the marketing-operations dashboard
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email platform@adlift.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT token (e.g. "Bearer <token>")
