package models

// UploadedImage is one user-submitted photograph. It lives only for the
// duration of the request that carried it and is never persisted.
type UploadedImage struct {
	Data     []byte
	MIMEType string
	Size     int64
	Filename string
}

// BeautyResult is the flat facial aesthetics score record.
// Integer scores are 0-100; the _mm and _deg fields are raw measurements.
type BeautyResult struct {
	Overall                 int     `json:"overall" validate:"min=0,max=100"`
	Symmetry                int     `json:"symmetry" validate:"min=0,max=100"`
	SkinHealth              int     `json:"skinHealth" validate:"min=0,max=100"`
	Proportion              int     `json:"proportion" validate:"min=0,max=100"`
	Youthfulness            int     `json:"youthfulness" validate:"min=0,max=100"`
	GoldenRatio             int     `json:"goldenRatio" validate:"min=0,max=100"`
	Lips                    int     `json:"lips" validate:"min=0,max=100"`
	Eyes                    int     `json:"eyes" validate:"min=0,max=100"`
	Nose                    int     `json:"nose" validate:"min=0,max=100"`
	Jawline                 int     `json:"jawline" validate:"min=0,max=100"`
	Cheekbones              int     `json:"cheekbones" validate:"min=0,max=100"`
	Firmness                int     `json:"firmness" validate:"min=0,max=100"`
	Wrinkles                int     `json:"wrinkles" validate:"min=0,max=100"`
	EyeArea                 int     `json:"eyeArea" validate:"min=0,max=100"`
	SkinTone                int     `json:"skinTone" validate:"min=0,max=100"`
	FacialVolume            int     `json:"facialVolume" validate:"min=0,max=100"`
	GoldenRatioEyeToEye     int     `json:"goldenRatioEyeToEye" validate:"min=0,max=100"`
	GoldenRatioNoseToChin   int     `json:"goldenRatioNoseToChin" validate:"min=0,max=100"`
	GoldenRatioLipsToChin   int     `json:"goldenRatioLipsToChin" validate:"min=0,max=100"`
	GoldenRatioForehead     int     `json:"goldenRatioForehead" validate:"min=0,max=100"`
	SymmetryEyeLevelDiffMM  float64 `json:"symmetryEyeLevelDiff_mm"`
	SymmetryNoseAngleDeg    float64 `json:"symmetryNoseAngle_deg"`
	SymmetryLipCornerDiffMM float64 `json:"symmetryLipCornerDiff_mm"`
	SymmetryJawlineBalance  int     `json:"symmetryJawlineBalance" validate:"min=0,max=100"`
}

// SkinResult is the skin condition score record produced by the
// differential pass.
type SkinResult struct {
	Overall      int `json:"overall" validate:"min=0,max=100"`
	Hydration    int `json:"hydration" validate:"min=0,max=100"`
	UVDamage     int `json:"uvDamage" validate:"min=0,max=100"`
	Wrinkles     int `json:"wrinkles" validate:"min=0,max=100"`
	Evenness     int `json:"evenness" validate:"min=0,max=100"`
	Texture      int `json:"texture" validate:"min=0,max=100"`
	Pores        int `json:"pores" validate:"min=0,max=100"`
	Redness      int `json:"redness" validate:"min=0,max=100"`
	Acne         int `json:"acne" validate:"min=0,max=100"`
	Pigmentation int `json:"pigmentation" validate:"min=0,max=100"`

	PredictedConditionName string            `json:"predictedConditionName,omitempty"`
	ConfidenceScore        int               `json:"confidenceScore" validate:"min=0,max=100"`
	ConditionDetails       *ConditionDetails `json:"conditionDetails,omitempty" validate:"omitempty"`
}

// ConditionDetails describes the recognised condition and what to do about it.
type ConditionDetails struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Remedies    []Remedy `json:"remedies" validate:"max=3,dive"`
}

// Remedy has no identity beyond its position in the parent's list.
type Remedy struct {
	Name         string   `json:"name" validate:"required"`
	Ingredients  []string `json:"ingredients" validate:"required"`
	Instructions string   `json:"instructions" validate:"required"`
	Benefits     string   `json:"benefits"`
	Image        string   `json:"image,omitempty"`
}
