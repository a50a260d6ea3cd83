// Package schema declares the response shapes requested from the model and
// validates decoded model output against them.
package schema

// Type is a JSON value type
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Schema is a declarative description of an expected JSON value.
// Order lists object properties in the order they should be presented to
// the model.
type Schema struct {
	Type        Type
	Description string
	Minimum     *float64
	Maximum     *float64
	Properties  map[string]*Schema
	Order       []string
	Required    []string
	Items       *Schema
}

// field is one named property, used to keep declarations ordered
type field struct {
	name     string
	schema   *Schema
	optional bool
}

func object(description string, fields ...field) *Schema {
	s := &Schema{
		Type:        TypeObject,
		Description: description,
		Properties:  make(map[string]*Schema, len(fields)),
	}
	for _, f := range fields {
		s.Properties[f.name] = f.schema
		s.Order = append(s.Order, f.name)
		if !f.optional {
			s.Required = append(s.Required, f.name)
		}
	}
	return s
}

func bounded(description string) *Schema {
	lo, hi := 0.0, 100.0
	return &Schema{Type: TypeInteger, Description: description, Minimum: &lo, Maximum: &hi}
}

func number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

func str(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func array(description string, items *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: items}
}

func required(name string, s *Schema) field { return field{name: name, schema: s} }
func optional(name string, s *Schema) field { return field{name: name, schema: s, optional: true} }

// BeautySchema returns the shape of a beauty analysis result. All 24
// fields are required.
func BeautySchema() *Schema {
	return object("Facial aesthetics assessment",
		required("overall", bounded("Overall beauty score (0-100)")),
		required("symmetry", bounded("Facial symmetry score (0-100)")),
		required("skinHealth", bounded("Skin health score (0-100)")),
		required("proportion", bounded("Facial proportion score (0-100)")),
		required("youthfulness", bounded("Youthfulness score (0-100)")),
		required("goldenRatio", bounded("Golden ratio adherence score (0-100)")),
		required("lips", bounded("Lips score (0-100)")),
		required("eyes", bounded("Eyes score (0-100)")),
		required("nose", bounded("Nose score (0-100)")),
		required("jawline", bounded("Jawline score (0-100)")),
		required("cheekbones", bounded("Cheekbones score (0-100)")),
		required("firmness", bounded("Skin firmness score (0-100)")),
		required("wrinkles", bounded("Wrinkle presence score (0-100)")),
		required("eyeArea", bounded("Eye area score (0-100)")),
		required("skinTone", bounded("Skin tone uniformity score (0-100)")),
		required("facialVolume", bounded("Facial volume score (0-100)")),
		required("goldenRatioEyeToEye", bounded("Eye-to-eye golden ratio score (0-100)")),
		required("goldenRatioNoseToChin", bounded("Nose-to-chin golden ratio score (0-100)")),
		required("goldenRatioLipsToChin", bounded("Lips-to-chin golden ratio score (0-100)")),
		required("goldenRatioForehead", bounded("Forehead golden ratio score (0-100)")),
		required("symmetryEyeLevelDiff_mm", number("Eye level difference in mm")),
		required("symmetryNoseAngle_deg", number("Nose angle deviation in degrees")),
		required("symmetryLipCornerDiff_mm", number("Lip corner difference in mm")),
		required("symmetryJawlineBalance", bounded("Jawline balance score (0-100)")),
	)
}

// RemedySchema returns the shape of a single remedy
func RemedySchema() *Schema {
	return object("A recommended remedy",
		required("name", str("Name of the remedy")),
		required("ingredients", array("List of ingredients", str(""))),
		required("instructions", str("Preparation and usage instructions")),
		required("benefits", str("Expected benefits of the remedy")),
		optional("image", str("Optional image URL as plain string")),
	)
}

// ConditionDetailsSchema returns the shape of the recognised condition record
func ConditionDetailsSchema() *Schema {
	return object("Details of the predicted condition",
		required("name", str("Name of the skin condition")),
		required("description", str("Detailed description of the condition")),
		required("remedies", array("List of recommended remedies", RemedySchema())),
	)
}

// SkinSchema returns the shape of a skin analysis result
func SkinSchema() *Schema {
	return object("Skin condition assessment",
		required("overall", bounded("Overall skin analysis score (0-100)")),
		required("hydration", bounded("Hydration level score (0-100)")),
		required("uvDamage", bounded("UV damage score (0-100)")),
		required("wrinkles", bounded("Wrinkles score (0-100)")),
		required("evenness", bounded("Evenness of skin tone (0-100)")),
		required("texture", bounded("Skin texture score (0-100)")),
		required("pores", bounded("Pore visibility score (0-100)")),
		required("redness", bounded("Redness score (0-100)")),
		required("acne", bounded("Acne presence score (0-100)")),
		required("pigmentation", bounded("Pigmentation score (0-100)")),
		optional("predictedConditionName", str("Name of the predicted condition")),
		required("confidenceScore", bounded("Confidence score for the predicted condition (0-100)")),
		optional("conditionDetails", ConditionDetailsSchema()),
	)
}

// FieldNames returns the top-level property names in declaration order
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.Order))
	copy(out, s.Order)
	return out
}
