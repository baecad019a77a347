package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsco101/Bignay-Backend/internal/analyzer"
	"github.com/fsco101/Bignay-Backend/internal/classifier"
	apperrors "github.com/fsco101/Bignay-Backend/internal/errors"
	"github.com/fsco101/Bignay-Backend/internal/gate"
	"github.com/fsco101/Bignay-Backend/internal/imaging"
	"github.com/fsco101/Bignay-Backend/internal/logger"
	"github.com/fsco101/Bignay-Backend/internal/recommend"
	"github.com/fsco101/Bignay-Backend/internal/repository"
	"github.com/fsco101/Bignay-Backend/pkg/models"
)

// Scan subjects.
const (
	SubjectFruit = "fruit"
	SubjectLeaf  = "leaf"
)

// ScanRequest is one scan invocation: a base64 data URL or an image URL,
// plus the subject discriminator.
type ScanRequest struct {
	Image    string
	ImageURL string
	Subject  string
}

// ScanService runs the full image-analysis pipeline for one request.
type ScanService interface {
	Scan(ctx context.Context, req ScanRequest) (*models.ScanResponse, error)
}

type scanService struct {
	imageRepo  repository.ImageRepository
	segmenter  analyzer.Segmenter
	features   analyzer.FeatureExtractor
	quality    analyzer.QualityAssessor
	enhancer   analyzer.Enhancer
	fruitModel classifier.Classifier
	leafModel  classifier.Classifier
	fruitFall  classifier.HeuristicFruitClassifier
	leafFall   classifier.HeuristicLeafClassifier
	gate       *gate.SubjectGate
}

// NewScanService wires the pipeline components together.
func NewScanService(
	imageRepo repository.ImageRepository,
	seg analyzer.Segmenter,
	feat analyzer.FeatureExtractor,
	qual analyzer.QualityAssessor,
	enh analyzer.Enhancer,
	fruitModel classifier.Classifier,
	leafModel classifier.Classifier,
	subjectGate *gate.SubjectGate,
) ScanService {
	return &scanService{
		imageRepo:  imageRepo,
		segmenter:  seg,
		features:   feat,
		quality:    qual,
		enhancer:   enh,
		fruitModel: fruitModel,
		leafModel:  leafModel,
		gate:       subjectGate,
	}
}

// Scan decodes the submitted image, extracts features, assesses quality,
// runs the classifier on both the original and an enhanced copy, gates the
// result and builds the response. Every entity is allocated per call; nothing
// is shared across requests.
func (s *scanService) Scan(ctx context.Context, req ScanRequest) (*models.ScanResponse, error) {
	subject := strings.ToLower(strings.TrimSpace(req.Subject))
	if subject == "" {
		subject = SubjectFruit
	}
	if subject != SubjectFruit && subject != SubjectLeaf {
		return nil, apperrors.NewValidationError("invalid 'subject': use 'fruit' or 'leaf'", nil)
	}

	raw, err := s.imageBytes(ctx, req)
	if err != nil {
		return nil, err
	}
	imageSHA := imaging.SHA256Hex(raw)

	grid, err := imaging.DecodeImageBytes(raw)
	if err != nil {
		return nil, err
	}

	mask, coverage := s.segmenter.Segment(grid)
	features := s.features.Extract(grid, mask, coverage)
	quality := s.quality.Assess(grid, coverage)
	enhanced := s.enhancer.Enhance(grid)
	moldHeuristic := moldFlag(grid)

	prediction, usedEnhanced := s.predict(ctx, subject, grid, enhanced, features)

	var fruitObj *models.FruitResult
	var leafObj *models.LeafResult
	if subject == SubjectFruit {
		ripeness := ripenessStageFromClass(prediction.Class)
		fruitQuality := qualityFromClass(prediction.Class)
		fruitObj = &models.FruitResult{
			Class:         prediction.Class,
			Confidence:    prediction.Confidence,
			RipenessStage: ripeness,
			MoldPresent:   prediction.Class == "mold" || moldHeuristic,
			Quality:       fruitQuality,
		}
	} else {
		leafObj = &models.LeafResult{
			Class:       prediction.Class,
			Confidence:  prediction.Confidence,
			MoldPresent: prediction.Class == "mold" || moldHeuristic,
		}
	}

	verdict := s.gate.Evaluate(prediction.Confidence, features, &quality)

	logger.WithFields(logrus.Fields{
		"subject":          subject,
		"image_sha256":     imageSHA,
		"confidence":       prediction.Confidence,
		"is_bignay":        verdict.IsBignay,
		"confidence_level": verdict.ConfidenceLevel,
		"mask_coverage":    features.MaskCoverage,
		"overall_quality":  quality.OverallQuality,
		"used_enhanced":    usedEnhanced,
	}).Info("Scan completed")

	resp := &models.ScanResponse{
		Confidence:  prediction.Confidence,
		IsBignay:    verdict.IsBignay,
		Detection:   verdict,
		Subject:     subject,
		ImageSHA256: imageSHA,
		Quality: models.ImageQualityReport{
			Overall:          quality.OverallQuality,
			BlurScore:        quality.BlurScore,
			BrightnessScore:  quality.BrightnessScore,
			ContrastScore:    quality.ContrastScore,
			SubjectSizeScore: quality.SubjectSizeScore,
			Issues:           verdictList(quality.Issues),
			Recommendations:  verdictList(quality.Recommendations),
		},
		Color: models.ColorReport{
			HSVMean: features.ColorHSVMean,
			LabMean: features.ColorLabMean,
		},
		Size: models.SizeReport{
			PxDiameter:   features.SizePxDiameter,
			MaskCoverage: features.MaskCoverage,
		},
		Debug: models.ScanDebug{
			MoldHeuristic:       moldHeuristic,
			FruitModelAvailable: s.fruitModel.Available(),
			LeafModelAvailable:  s.leafModel.Available(),
			UsedEnhancedImage:   usedEnhanced,
		},
		Time: time.Now().UTC().Format(time.RFC3339),
	}

	if !verdict.IsBignay {
		resp.Result = "not_bignay"
		resp.Recommend = models.Recommendation{
			Primary:      "Please scan a Bignay fruit or leaf",
			Alternatives: []string{},
			Reason:       derefOr(verdict.Reason, ""),
			Tips:         verdictList(quality.Recommendations),
		}
		resp.Debug.DetectionReason = verdict.Reason
		return resp, nil
	}

	resp.Result = prediction.Class
	resp.Fruit = fruitObj
	resp.Leaf = leafObj

	var ripeness, fruitQuality *string
	moldPresent := moldHeuristic
	if fruitObj != nil {
		ripeness = fruitObj.RipenessStage
		fruitQuality = fruitObj.Quality
		moldPresent = fruitObj.MoldPresent
	} else if leafObj != nil {
		moldPresent = leafObj.MoldPresent
	}
	rec := recommend.Recommend(ripeness, moldPresent, fruitQuality)

	tips := []string{}
	if verdict.Warning != "" {
		tips = append(tips, verdict.Warning)
	}
	if quality.OverallQuality != models.QualityGood && len(quality.Recommendations) > 0 {
		n := len(quality.Recommendations)
		if n > 2 {
			n = 2
		}
		tips = append(tips, quality.Recommendations[:n]...)
	}
	rec.Tips = tips
	resp.Recommend = rec

	return resp, nil
}

// imageBytes resolves the request to raw upload bytes: inline data URL first,
// remote URL second.
func (s *scanService) imageBytes(ctx context.Context, req ScanRequest) ([]byte, error) {
	if req.Image != "" {
		return imaging.DecodeDataURL(req.Image)
	}
	if req.ImageURL != "" {
		if err := s.imageRepo.ValidateImageURL(req.ImageURL); err != nil {
			return nil, apperrors.NewValidationError("invalid image URL", err)
		}
		raw, err := s.imageRepo.FetchImageBytes(ctx, req.ImageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, apperrors.NewTimeoutError("image fetch timed out", err)
			}
			return nil, apperrors.NewNetworkError("failed to fetch image", err)
		}
		return raw, nil
	}
	return nil, apperrors.NewValidationError("missing 'image' field", nil)
}

// predict runs the subject's model on both the original and enhanced tensors
// and keeps the higher-confidence result. Without a model (or when the model
// server fails) it falls back to the color heuristics.
func (s *scanService) predict(ctx context.Context, subject string, grid, enhanced *imaging.Grid, features models.ImageFeatures) (models.Prediction, bool) {
	model := s.fruitModel
	if subject == SubjectLeaf {
		model = s.leafModel
	}

	if model.Available() {
		original := imaging.ResizeForModel(grid, classifier.ModelInputSize)
		boosted := imaging.ResizeForModel(enhanced, classifier.ModelInputSize)

		predOriginal, errO := model.Predict(ctx, original)
		predEnhanced, errE := model.Predict(ctx, boosted)
		switch {
		case errO == nil && errE == nil:
			if predEnhanced.Confidence > predOriginal.Confidence {
				return predEnhanced, true
			}
			return predOriginal, false
		case errO == nil:
			return predOriginal, false
		case errE == nil:
			return predEnhanced, true
		default:
			logger.WithError(errO).Warn("Model server unavailable, using heuristic classifier")
		}
	}

	if subject == SubjectLeaf {
		return s.leafFall.PredictFromFeatures(features), false
	}
	return s.fruitFall.PredictFromFeatures(features), false
}

// moldFlag is a conservative classical heuristic: too many very dark,
// low-saturation pixels suggest mold.
func moldFlag(g *imaging.Grid) bool {
	_, sPlane, vPlane := g.HSV()
	moldish := 0
	for i := range sPlane {
		if vPlane[i] < 55 && sPlane[i] < 85 {
			moldish++
		}
	}
	return float64(moldish)/float64(len(sPlane)) > 0.22
}

func ripenessStageFromClass(class string) *string {
	switch class {
	case "unripe", "ripe", "overripe":
		return &class
	case "good":
		ripe := "ripe"
		return &ripe
	}
	return nil
}

func qualityFromClass(class string) *string {
	var q string
	switch class {
	case "mold":
		q = "reject"
	case "good", "ripe":
		q = "good"
	case "unripe", "overripe":
		q = "ok"
	default:
		return nil
	}
	return &q
}

func verdictList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
