package container

import (
	"fmt"
	"net/http"

	"github.com/fsco101/Bignay-Backend/internal/analyzer"
	"github.com/fsco101/Bignay-Backend/internal/classifier"
	"github.com/fsco101/Bignay-Backend/internal/config"
	"github.com/fsco101/Bignay-Backend/internal/gate"
	"github.com/fsco101/Bignay-Backend/internal/repository"
	"github.com/fsco101/Bignay-Backend/internal/service"
	"github.com/fsco101/Bignay-Backend/internal/storage"
	"github.com/fsco101/Bignay-Backend/internal/transport"
)

// Container holds all application dependencies, constructed once at startup
// and passed into request handlers. No module-level singletons.
type Container struct {
	config      *config.Config
	imageRepo   repository.ImageRepository
	scanService service.ScanService
	handler     http.Handler
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config) (*Container, error) {
	fetcher := storage.NewHTTPImageFetcher(cfg.MaxRequestBodySize)

	var blobs storage.BlobStorage
	if cfg.AzureAccountName != "" {
		var err error
		blobs, err = storage.NewAzureStorage(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
		}
	}
	imageRepo := repository.NewHTTPImageRepository(fetcher, blobs)

	fruitModel := classifier.NewRemoteClassifier(
		cfg.ModelServerURL, cfg.FruitModelName, classifier.FruitClasses, cfg.ModelTimeout)
	leafModel := classifier.NewRemoteClassifier(
		cfg.ModelServerURL, cfg.LeafModelName, classifier.LeafClasses, cfg.ModelTimeout)

	scanService := service.NewScanService(
		imageRepo,
		analyzer.NewSegmenter(),
		analyzer.NewFeatureExtractor(),
		analyzer.NewQualityAssessor(),
		analyzer.NewEnhancer(),
		fruitModel,
		leafModel,
		gate.NewSubjectGate(),
	)
	handler := transport.NewHandler(scanService, cfg)

	return &Container{
		config:      cfg,
		imageRepo:   imageRepo,
		scanService: scanService,
		handler:     handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
