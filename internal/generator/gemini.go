package generator

import (
	"bytes"
	"encoding/json"
	"strings"
)

// request and response shapes of the generateContent REST endpoint

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type generateContentRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Text concatenates the parts of the first candidate.
func (r *generateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

var planSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"title":       {Type: "STRING"},
		"description": {Type: "STRING"},
		"exercises": {
			Type: "ARRAY",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"name":         {Type: "STRING", Description: "Specific exercise name"},
					"sets":         {Type: "NUMBER"},
					"reps":         {Type: "STRING", Description: "Repetitions, e.g. '12' or '8-12'"},
					"weight":       {Type: "STRING", Description: "Specific weight, e.g. '35lbs', '15kg' or 'Bodyweight'"},
					"restSeconds":  {Type: "NUMBER"},
					"instructions": {Type: "STRING"},
					"targetMuscle": {Type: "STRING"},
				},
				Required: []string{"name", "sets", "reps", "weight", "restSeconds", "instructions", "targetMuscle"},
			},
		},
	},
	Required: []string{"title", "description", "exercises"},
}

// descriptor accepts a JSON string or number, since models do not always respect the schema type.
type descriptor string

func (d *descriptor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = descriptor(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = descriptor(n.String())
	return nil
}

type generatedExercise struct {
	Name         *string     `json:"name"`
	Sets         *float64    `json:"sets"`
	Reps         *descriptor `json:"reps"`
	Weight       *descriptor `json:"weight"`
	RestSeconds  *float64    `json:"restSeconds"`
	Instructions *string     `json:"instructions"`
	TargetMuscle *string     `json:"targetMuscle"`
}

type generatedPlan struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Exercises   []generatedExercise `json:"exercises"`
}

func isWhole(f float64) bool {
	return f == float64(int64(f))
}
