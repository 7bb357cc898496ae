package server

import (
	"github.com/gin-gonic/gin"

	"libraryapi/internal/api/controller"
	"libraryapi/internal/api/middleware"
	"libraryapi/internal/api/models"
	"libraryapi/internal/config"
)

// Server owns the gin engine and the route table.
type Server struct {
	engine *gin.Engine
}

// NewServer wires the middleware chain and every route. Book routes sit
// behind bearer-token authentication and the role table; the remaining
// surfaces are open, matching the variant they came from.
func NewServer(
	cfg *config.Config,
	books *controller.BookController,
	students *controller.StudentController,
	users *controller.UserController,
	auth *controller.AuthController,
) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID())

	authn := middleware.VerifyJWT([]byte(cfg.JWT.Secret), middleware.DefaultRules())
	bookID := middleware.ValidateIDParam("book")
	studentID := middleware.ValidateIDParam("student")
	userID := middleware.ValidateUserIDParam()

	b := engine.Group("/books", authn)
	b.GET("", books.List)
	b.GET("/:id", bookID, books.Get)
	b.POST("", middleware.ValidateBody[models.BookRequest](), books.Create)
	b.PUT("/:id", bookID, middleware.ValidateBody[models.BookRequest](), books.Update)
	b.PUT("/:id/availability", bookID, middleware.ValidateBody[models.AvailabilityRequest](), books.UpdateAvailability)
	b.DELETE("/:id", bookID, books.Delete)

	s := engine.Group("/students")
	s.GET("", students.List)
	s.GET("/:id", studentID, students.Get)
	s.POST("", middleware.ValidateBody[models.StudentRequest](), students.Create)
	s.PUT("/:id", studentID, middleware.ValidateBody[models.StudentRequest](), students.Update)
	s.DELETE("/:id", studentID, students.Delete)

	u := engine.Group("/users")
	u.GET("/search", users.Search)
	u.GET("/with-books", users.WithBooks)
	u.GET("", users.List)
	u.GET("/:id", userID, users.Get)
	u.POST("", middleware.ValidateBody[models.UserRequest](), users.Create)
	u.PUT("/:id", userID, middleware.ValidateBody[models.UserRequest](), users.Update)
	u.DELETE("/:id", userID, users.Delete)

	engine.POST("/register", middleware.ValidateBody[models.RegisterRequest](), auth.Register)
	engine.POST("/login", middleware.ValidateBody[models.LoginRequest](), auth.Login)

	return &Server{engine: engine}
}

// Engine exposes the router as an http.Handler.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
