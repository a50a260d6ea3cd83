package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const validSkin = `{
	"overall": 70, "hydration": 60, "uvDamage": 20, "wrinkles": 15, "evenness": 65,
	"texture": 55, "pores": 40, "redness": 30, "acne": 75, "pigmentation": 35,
	"predictedConditionName": "acne vulgaris", "confidenceScore": 82,
	"conditionDetails": {
		"name": "acne vulgaris",
		"description": "Inflammatory papules across both cheeks.",
		"remedies": [
			{"name": "Salicylic cleanser", "ingredients": ["salicylic acid"], "instructions": "Twice daily.", "benefits": "Unclogs pores."},
			{"name": "Niacinamide serum", "ingredients": ["niacinamide", "zinc"], "instructions": "Evening.", "benefits": "Calms redness.", "image": "https://example.com/serum.png"}
		]
	}
}`

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestBeautySchema_Fields(t *testing.T) {
	s := BeautySchema()
	if len(s.Order) != 24 {
		t.Fatalf("Expected 24 beauty fields, got %d", len(s.Order))
	}
	if len(s.Required) != 24 {
		t.Errorf("Expected every beauty field to be required, got %d", len(s.Required))
	}
	for _, name := range []string{"symmetryEyeLevelDiff_mm", "symmetryNoseAngle_deg", "symmetryLipCornerDiff_mm"} {
		p := s.Properties[name]
		if p.Type != TypeNumber || p.Minimum != nil || p.Maximum != nil {
			t.Errorf("Expected %s to be an unbounded number", name)
		}
	}
}

func TestSkinSchema_ScoresBounded(t *testing.T) {
	s := SkinSchema()
	for _, name := range s.Order {
		p := s.Properties[name]
		if p.Type != TypeInteger {
			continue
		}
		if p.Minimum == nil || *p.Minimum != 0 || p.Maximum == nil || *p.Maximum != 100 {
			t.Errorf("Expected %s bounded 0-100", name)
		}
	}
	for _, name := range []string{"predictedConditionName", "conditionDetails"} {
		for _, r := range s.Required {
			if r == name {
				t.Errorf("Expected %s to be optional", name)
			}
		}
	}
}

func TestValidate_ValidSkin(t *testing.T) {
	if err := Validate(decode(t, validSkin), SkinSchema()); err != nil {
		t.Fatalf("Expected valid document, got %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantPath string
	}{
		{"missing score", func(m map[string]any) { delete(m, "hydration") }, "hydration"},
		{"above maximum", func(m map[string]any) { m["acne"] = 101.0 }, "acne"},
		{"below minimum", func(m map[string]any) { m["redness"] = -1.0 }, "redness"},
		{"fractional integer", func(m map[string]any) { m["pores"] = 40.5 }, "pores"},
		{"string score", func(m map[string]any) { m["overall"] = "high" }, "overall"},
		{"null score", func(m map[string]any) { m["texture"] = nil }, "texture"},
		{"bad nested remedy", func(m map[string]any) {
			details := m["conditionDetails"].(map[string]any)
			remedies := details["remedies"].([]any)
			delete(remedies[1].(map[string]any), "name")
		}, "conditionDetails.remedies[1].name"},
		{"ingredients not array", func(m map[string]any) {
			details := m["conditionDetails"].(map[string]any)
			remedies := details["remedies"].([]any)
			remedies[0].(map[string]any)["ingredients"] = "salicylic acid"
		}, "conditionDetails.remedies[0].ingredients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, validSkin).(map[string]any)
			tt.mutate(doc)

			err := Validate(doc, SkinSchema())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			found := false
			for _, v := range verr.Violations {
				if v.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected violation at %s, got %v", tt.wantPath, err)
			}
		})
	}
}

func TestValidate_NotAnObject(t *testing.T) {
	err := Validate(decode(t, `[1,2,3]`), BeautySchema())
	if err == nil || !strings.Contains(err.Error(), "expected object") {
		t.Errorf("Expected object type error, got %v", err)
	}
}

func TestValidate_OptionalAbsent(t *testing.T) {
	doc := decode(t, validSkin).(map[string]any)
	delete(doc, "conditionDetails")
	delete(doc, "predictedConditionName")
	if err := Validate(doc, SkinSchema()); err != nil {
		t.Errorf("Expected optional fields to be omittable, got %v", err)
	}
}

func TestValidate_JSONNumber(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{"n": 12}`))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatal(err)
	}
	s := object("", required("n", bounded("")))
	if err := Validate(v, s); err != nil {
		t.Errorf("Expected json.Number to validate, got %v", err)
	}
}
