package api

import (
	"context"
	"embed"

	"gorm.io/gorm"

	"github.com/joe-black-jb/mops-revenue/internal/catalog"
	"github.com/joe-black-jb/mops-revenue/internal/logger"
	"github.com/joe-black-jb/mops-revenue/internal/revenue"
	"github.com/joe-black-jb/mops-revenue/internal/storage"
)

//go:embed web
var webFS embed.FS

// Fetcher downloads and cleans one month of revenue data.
type Fetcher interface {
	DownloadRevenueData(ctx context.Context, year, month int, market revenue.Market) (*revenue.Table, error)
}

// Deps are the collaborators of the server. Uploader, Catalog and DB are
// optional.
type Deps struct {
	Fetcher  Fetcher
	Writer   *storage.CSVWriter
	Uploader *storage.S3Uploader
	Catalog  *catalog.Catalog
	DB       *gorm.DB
	Logger   *logger.Logger

	TokenSecret  string
	AllowOrigins []string
}

type Server struct {
	fetcher  Fetcher
	writer   *storage.CSVWriter
	uploader *storage.S3Uploader
	catalog  *catalog.Catalog
	db       *gorm.DB
	log      *logger.Logger

	tokenSecret  string
	allowOrigins []string
}

func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		fetcher:      d.Fetcher,
		writer:       d.Writer,
		uploader:     d.Uploader,
		catalog:      d.Catalog,
		db:           d.DB,
		log:          log,
		tokenSecret:  d.TokenSecret,
		allowOrigins: d.AllowOrigins,
	}
}
