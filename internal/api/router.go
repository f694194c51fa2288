package api

import (
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joe-black-jb/mops-revenue/internal/api/industries"
)

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.allowOrigins) > 0 {
		corsConfig.AllowOrigins = s.allowOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/templates/*.html")))
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	router.GET("/", s.IndexGin)

	api := router.Group("/api")
	api.Use(AuthMiddleware(s.tokenSecret))
	api.POST("/download", s.DownloadGin)
	api.GET("/downloads", s.GetDownloadsGin)
	api.GET("/industries", industries.GetIndustries)

	return router
}
