// Package prompt builds the instruction text sent with each model call.
// Every function here is pure.
package prompt

import (
	"encoding/json"
	"strings"
)

// UnknownResponse stands in for a findings pass that produced no text
const UnknownResponse = "Unknown response"

// BeautyPrompt asks for the facial aesthetics score record
const BeautyPrompt = `Analyze the submitted facial image and provide a detailed assessment covering:

1. **Overall Aesthetics & Symmetry**
   - Balance of facial features (eyes, nose, mouth, jawline)
   - Left/right symmetry and any notable asymmetries

2. **Skin Quality & Texture**
   - Hydration level, pore visibility, smoothness
   - Presence of fine lines, wrinkles, redness, pigmentation

3. **Proportions & Golden Ratio**
   - How well facial proportions align with classical aesthetics
   - Measurements or visual comparisons (e.g. eye-to-eye span, nose-to-chin)

4. **Youthfulness Indicators**
   - Firmness, wrinkle depth, fullness of cheeks and lips
   - Signs of aging vs. areas that appear youthful

5. **Feature Highlights**
   - Eyes: shape, brightness, under-eye condition
   - Lips: fullness, definition, color tone
   - Jawline & Chin: contour, sharpness, balance
   - Cheekbones: prominence, shadows, lift

Every score is an integer from 0 to 100. symmetryEyeLevelDiff_mm and symmetryLipCornerDiff_mm are measured differences in millimetres; symmetryNoseAngle_deg is the nose angle deviation in degrees.

Example Structure (values are illustrative):
{
  "overall": 88, "symmetry": 92, "skinHealth": 85, "proportion": 87, "youthfulness": 90, "goldenRatio": 91, "lips": 85, "eyes": 90, "nose": 88, "jawline": 86, "cheekbones": 89, "firmness": 91, "wrinkles": 94, "eyeArea": 89, "skinTone": 86, "facialVolume": 87, "goldenRatioEyeToEye": 95, "goldenRatioNoseToChin": 92, "goldenRatioLipsToChin": 90, "goldenRatioForehead": 89, "symmetryEyeLevelDiff_mm": 0.8, "symmetryNoseAngle_deg": 1.1, "symmetryLipCornerDiff_mm": 0.4, "symmetryJawlineBalance": 93
}

CRITICAL: Ensure the output contains ONLY the JSON object and nothing else. No introductory text, no explanations, no markdown formatting (like wrapping in triple backticks).`

const featureChecklist = `1. **Location & Distribution**
   - Exact anatomical site(s) (e.g., under both eyes, forehead, cheeks)
   - Number (single vs. multiple) and pattern (e.g., bilateral symmetric, clustered, linear)

2. **Morphology**
   - Primary shape/form (e.g., macule, papule, patch, comedone)
   - Size (in mm or descriptive: small, medium, large)
   - Color (e.g., brown, erythematous, bluish-gray)
   - Border definition (well-circumscribed vs. ill-defined)

3. **Texture & Surface Characteristics**
   - Smooth, rough, scaly, crusted, depressed, elevated
   - Presence of secondary changes (e.g., scaling, excoriations, lichenification)

4. **Associated Features**
   - Surrounding erythema or edema
   - Vascular signs (e.g., telangiectasias, purpura)
   - Pigmentary changes beyond primary lesion (e.g., halo, post-inflammatory hyperpigmentation)

5. **Contextual & Severity Assessment**
   - Subjective symptoms if known (e.g., itching, pain)
   - Severity grading (mild/moderate/severe)
   - Impact on appearance (e.g., contrast with surrounding skin tone, visibility in ambient lighting)`

// FindingsPrompt is the first free-text findings pass
const FindingsPrompt = `You are a dermatologic image analysis assistant. Analyze the provided image of a skin area.

**First, determine if the image primarily shows normal, healthy skin or if it shows specific skin findings (e.g., dark circles, blackheads, pimples, fine lines).**

**A. If the skin appears normal with no significant findings:**
   - State this clearly (e.g., "The skin appears within normal limits and healthy.").
   - Briefly summarise its appearance (e.g., "even tone, smooth texture, no visible lesions noted").
   - Do not proceed with the detailed feature analysis or differential diagnoses.

**B. If specific skin findings are present,** report the following standardized features for each finding:

` + featureChecklist + `

Finally, provide a concise summary of your observations in layman's terms. If applicable, list the top 2-3 differential considerations. Also state the most likely name of the skin disease, cosmetic concern or clinical sign in one or two words.`

// AlternateFindingsPrompt is the second, independently worded findings pass
const AlternateFindingsPrompt = `Act as a dermatology assistant reviewing a close-up photograph of a person's skin.

Begin by deciding whether the photograph shows healthy skin without notable findings, or whether it shows one or more specific findings such as dark circles, blackheads, pimples or fine lines.

If the skin looks healthy, say so plainly ("The skin appears within normal limits and healthy."), add a short description of what you see, and stop there.

Otherwise, describe every finding using this checklist:

` + featureChecklist + `

Close with a plain-language summary, your two or three leading differential considerations, and the single most likely name for the condition or cosmetic sign, in one or two words.`

// DifferentialParams are the dynamic inputs of the differential prompt
type DifferentialParams struct {
	FirstFindings  string
	SecondFindings string
	SkinDiseases   []string
	CosmeticSigns  []string
}

const differentialTemplate = `Examine the provided high-resolution facial image. Two independent assessments of it follow.

Condition A:
<<<
{{first}}
>>>

Condition B:
<<<
{{second}}
>>>

Evaluate the image for Condition A versus Condition B. For each of the two, weigh:

1. Lesion morphology (shape, size, border definition)
2. Color and surface texture
3. Distribution and symmetry (across forehead, cheeks, perioral area, etc.)
4. Hallmark features that support or contradict the diagnosis
5. Severity ("Mild", "Moderate" or "Severe")

Then decide which condition is more likely and give a final confidence score.

The diagnosed skin condition should be among these: {{diseases}}
and the diagnosed cosmetic signs should be among these: {{signs}}
If the final diagnosis is normal, use "healthy skin"; if it is not in the lists provided, use "unknown".

Respond with a single JSON object and nothing else, containing:
- overall, hydration, uvDamage, wrinkles, evenness, texture, pores, redness, acne, pigmentation: integer scores from 0 to 100
- predictedConditionName: the name of the more likely condition
- confidenceScore: integer from 0 to 100 for the predicted condition
- conditionDetails: an object with name, description and remedies, where remedies lists up to three remedies, each with name, ingredients (array of strings), instructions, benefits and an optional image URL`

// Differential builds the final structured pass prompt. Each narrative is
// embedded exactly once.
func Differential(p DifferentialParams) string {
	r := strings.NewReplacer(
		"{{first}}", FindingsOrPlaceholder(p.FirstFindings),
		"{{second}}", FindingsOrPlaceholder(p.SecondFindings),
		"{{diseases}}", quoteList(p.SkinDiseases),
		"{{signs}}", quoteList(p.CosmeticSigns),
	)
	return r.Replace(differentialTemplate)
}

// FindingsOrPlaceholder returns the trimmed narrative, or UnknownResponse
// when there is none
func FindingsOrPlaceholder(text string) string {
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	return UnknownResponse
}

func quoteList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
