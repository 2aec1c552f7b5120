package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Shunsuke0205/inspirit-for-supporter/internal/handler"
	appmw "github.com/Shunsuke0205/inspirit-for-supporter/internal/middleware"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/repository"
	"github.com/Shunsuke0205/inspirit-for-supporter/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	appRepo     repository.ApplicationRepository
	contribRepo repository.ContributionRepository
	commitRepo  repository.CommitmentRepository
	sha         string
	build       string
}

func New(db *gorm.DB, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	appRepo := repository.NewApplicationRepository(db)
	appSvc := service.NewApplicationService(appRepo)
	appHandler := handler.NewApplicationHandler(appSvc)

	contribRepo := repository.NewContributionRepository(db)
	contribSvc := service.NewContributionService(contribRepo, appRepo)
	contribHandler := handler.NewContributionHandler(contribSvc)

	commitRepo := repository.NewCommitmentRepository(db)
	commitSvc := service.NewCommitmentService(commitRepo)
	commitHandler := handler.NewCommitmentHandler(commitSvc)

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		e.Logger.Fatalf("failed to init firebase auth: %v", err)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.GET("/applications", appHandler.List, authMw.RequireAuth)
	api.POST("/applications", appHandler.Create, authMw.RequireAuth)
	api.GET("/applications/:id", appHandler.Get, authMw.RequireAuth)
	api.PUT("/applications/:id", appHandler.Update, authMw.RequireAuth)
	api.DELETE("/applications/:id", appHandler.Delete, authMw.RequireAuth)
	api.POST("/applications/:id/purchase", contribHandler.Confirm, authMw.RequireAuth)
	api.GET("/me/applications", appHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/contributions", contribHandler.ListMine, authMw.RequireAuth)
	api.POST("/me/commitments", commitHandler.Report, authMw.RequireAuth)
	api.GET("/students/:id/commitments", commitHandler.ListByStudent, authMw.RequireAuth)

	return &Server{e: e, appRepo: appRepo, contribRepo: contribRepo, commitRepo: commitRepo, sha: sha, build: buildTime}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the connection once the background connect finishes; the
// server accepts traffic before the database is ready.
func (s *Server) SetDB(db *gorm.DB) {
	if s.appRepo != nil {
		s.appRepo.SetDB(db)
	}
	if s.contribRepo != nil {
		s.contribRepo.SetDB(db)
	}
	if s.commitRepo != nil {
		s.commitRepo.SetDB(db)
	}
}
