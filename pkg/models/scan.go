package models

// ImageFeatures holds the numeric features extracted from a decoded image.
// Color means always carry a value (whole-image fallback when no foreground
// was found); SizePxDiameter is nil when coverage is too small for a size
// estimate.
type ImageFeatures struct {
	ContentHash    string     `json:"content_hash"`
	ColorHSVMean   [3]float64 `json:"color_hsv_mean"`
	ColorLabMean   [3]float64 `json:"color_lab_mean"`
	SizePxDiameter *float64   `json:"size_px_diameter"`
	MaskCoverage   float64    `json:"mask_coverage"`
}

// Overall quality tiers.
const (
	QualityGood       = "good"
	QualityAcceptable = "acceptable"
	QualityPoor       = "poor"
)

// ImageQuality is the capture-quality assessment of a single submitted image.
// All four sub-scores are in [0,1] and rounded to three decimals.
type ImageQuality struct {
	BlurScore        float64  `json:"blur_score"`
	BrightnessScore  float64  `json:"brightness_score"`
	ContrastScore    float64  `json:"contrast_score"`
	SubjectSizeScore float64  `json:"subject_size_score"`
	OverallQuality   string   `json:"overall_quality"`
	Issues           []string `json:"issues"`
	Recommendations  []string `json:"recommendations"`
}

// Confidence levels reported by the subject gate.
const (
	LevelVeryLow       = "very_low"
	LevelLow           = "low"
	LevelMedium        = "medium"
	LevelHigh          = "high"
	LevelColorMismatch = "color_mismatch"
)

// GateVerdict is the accept/reject decision for "is this actually a Bignay
// fruit or leaf". Reason is nil when the verdict needs no caveat; Warning is
// set only on accepted-but-caveated results.
type GateVerdict struct {
	IsBignay               bool     `json:"is_bignay"`
	ConfidenceLevel        string   `json:"confidence_level"`
	Reason                 *string  `json:"reason"`
	QualityIssues          []string `json:"quality_issues"`
	QualityRecommendations []string `json:"quality_recommendations"`
	Warning                string   `json:"warning,omitempty"`
}

// Prediction is the opaque classifier's output for one image tensor.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// FruitResult is the fruit-subject portion of a scan response.
type FruitResult struct {
	Class         string  `json:"class"`
	Confidence    float64 `json:"confidence"`
	RipenessStage *string `json:"ripeness_stage"`
	MoldPresent   bool    `json:"mold_present"`
	Quality       *string `json:"quality"`
}

// LeafResult is the leaf-subject portion of a scan response.
type LeafResult struct {
	Class       string  `json:"class"`
	Confidence  float64 `json:"confidence"`
	MoldPresent bool    `json:"mold_present"`
}

// Recommendation suggests what to do with the scanned fruit.
type Recommendation struct {
	Primary      string   `json:"primary"`
	Alternatives []string `json:"alternatives"`
	Reason       string   `json:"reason"`
	Tips         []string `json:"tips"`
}

// ImageQualityReport is the wire form of ImageQuality in a scan response.
type ImageQualityReport struct {
	Overall          string   `json:"overall"`
	BlurScore        float64  `json:"blur_score"`
	BrightnessScore  float64  `json:"brightness_score"`
	ContrastScore    float64  `json:"contrast_score"`
	SubjectSizeScore float64  `json:"subject_size_score"`
	Issues           []string `json:"issues"`
	Recommendations  []string `json:"recommendations"`
}

// ColorReport carries the mean color vectors of the masked subject.
type ColorReport struct {
	HSVMean [3]float64 `json:"hsv_mean"`
	LabMean [3]float64 `json:"lab_mean"`
}

// SizeReport carries the subject size estimate.
type SizeReport struct {
	PxDiameter   *float64 `json:"px_diameter"`
	MaskCoverage float64  `json:"mask_coverage"`
}

// ScanDebug exposes internals useful when tuning thresholds.
type ScanDebug struct {
	MoldHeuristic       bool    `json:"mold_heuristic"`
	FruitModelAvailable bool    `json:"fruit_model_available"`
	LeafModelAvailable  bool    `json:"leaf_model_available"`
	UsedEnhancedImage   bool    `json:"used_enhanced_image"`
	DetectionReason     *string `json:"detection_reason,omitempty"`
}

// ScanResponse is the full /predict response.
type ScanResponse struct {
	Result      string             `json:"result"`
	Confidence  float64            `json:"confidence"`
	IsBignay    bool               `json:"is_bignay"`
	Detection   GateVerdict        `json:"detection"`
	Subject     string             `json:"subject"`
	ImageSHA256 string             `json:"image_sha256"`
	Fruit       *FruitResult       `json:"fruit"`
	Leaf        *LeafResult        `json:"leaf"`
	Quality     ImageQualityReport `json:"image_quality"`
	Color       ColorReport        `json:"color"`
	Size        SizeReport         `json:"size"`
	Recommend   Recommendation     `json:"recommendation"`
	Debug       ScanDebug          `json:"debug"`
	Time        string             `json:"time"`
}
