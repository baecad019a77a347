package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsco101/Bignay-Backend/internal/config"
	apperrors "github.com/fsco101/Bignay-Backend/internal/errors"
	"github.com/fsco101/Bignay-Backend/internal/logger"
	"github.com/fsco101/Bignay-Backend/internal/service"
)

// ScanAPIRequest is the /predict request body: an inline data URL or a
// fetchable image URL, plus the subject discriminator.
type ScanAPIRequest struct {
	Image    string `json:"image,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Subject  string `json:"subject,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP router over the scan service.
func NewHandler(scans service.ScanService, cfg *config.Config) http.Handler {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
	)

	r.GET("/health", healthCheck(cfg))
	r.POST("/predict", predictImage(scans, cfg))

	return r
}

func predictImage(scans service.ScanService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing scan request")

		var req ScanAPIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		if req.Image == "" && req.ImageURL == "" {
			respondError(c, http.StatusBadRequest, "missing/invalid image field",
				apperrors.NewValidationError("missing 'image' field", nil))
			return
		}

		result, err := scans.Scan(ctx, service.ScanRequest{
			Image:    req.Image,
			ImageURL: req.ImageURL,
			Subject:  req.Subject,
		})
		if err != nil {
			respondError(c, determineStatusCode(err), errorMessage(err), err)
			return
		}

		logger.WithFields(logrus.Fields{
			"subject":            result.Subject,
			"result":             result.Result,
			"is_bignay":          result.IsBignay,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Scan request completed")

		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "available",
			"models": gin.H{
				"server_configured": cfg.ModelServerURL != "",
				"fruit":             cfg.FruitModelName,
				"leaf":              cfg.LeafModelName,
			},
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// errorMessage distinguishes the two client-error classes for the caller:
// an unusable image field versus bytes that are not a decodable image.
func errorMessage(err error) string {
	switch {
	case apperrors.IsType(err, apperrors.ErrorTypeMalformedInput):
		return "missing/invalid image field"
	case apperrors.IsType(err, apperrors.ErrorTypeDecode):
		return "corrupt image data"
	case apperrors.IsType(err, apperrors.ErrorTypeValidation):
		return "invalid request"
	default:
		return "scan failed"
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
