package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Probe, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	if cfg.Catalog != nil {
		catalogController := NewCatalogController(cfg.Catalog)
		api.GET("/books", catalogController.ListBooks)
		api.GET("/books/:id", catalogController.GetBook)
		api.GET("/authors", catalogController.ListAuthors)
		api.GET("/authors/alive", catalogController.AliveAuthors)
		api.GET("/authors/:id", catalogController.GetAuthor)
		api.GET("/languages", catalogController.ListLanguages)
		api.GET("/languages/:code", catalogController.GetLanguage)
		api.GET("/stats", catalogController.Statistics)
	}

	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks)
		api.POST("/ingest", tasksController.Ingest)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
