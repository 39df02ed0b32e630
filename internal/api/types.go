// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jeranaias/tensaku-tui/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// CorrectRequest is the body of POST /correct.
type CorrectRequest struct {
	Text            string `json:"text"`
	UserID          string `json:"user_id,omitempty"`
	PreferredModel  string `json:"preferred_model,omitempty"`
	CorrectionStyle string `json:"correction_style,omitempty"`
}

// VariantPayload is one element of CorrectResponse.Variants.
type VariantPayload struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// CorrectResponse is the body returned by POST /correct.
type CorrectResponse struct {
	OriginalText string           `json:"original_text"`
	Variants     []VariantPayload `json:"variants"`
}

// ModelsResponse is the body returned by GET /models.
type ModelsResponse struct {
	Models map[string]string `json:"models"`
}

// SetModelRequest is the body of POST /user/model.
type SetModelRequest struct {
	UserID    string `json:"user_id"`
	ModelName string `json:"model_name"`
}

// MessageResponse is a bare {"message": "..."} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// SettingsResponse is the body returned by GET /user/{id}/settings.
type SettingsResponse struct {
	UserID                 string `json:"user_id"`
	PreferredAIModel       string `json:"preferred_ai_model"`
	DefaultCorrectionStyle string `json:"default_correction_style"`
}

// HistoryItemPayload is one element of HistoryResponse.Items.
type HistoryItemPayload struct {
	ID             int64     `json:"id"`
	OriginalText   string    `json:"original_text"`
	CorrectedText  string    `json:"corrected_text"`
	CorrectionType string    `json:"correction_type"`
	AIModelUsed    string    `json:"ai_model_used"`
	CreatedAt      Timestamp `json:"created_at"`
}

// HistoryResponse is the body returned by GET /user/{id}/history.
type HistoryResponse struct {
	TotalCount int                  `json:"total_count"`
	Items      []HistoryItemPayload `json:"items"`
}

// errorResponse matches the backend's {"detail": ...} error body. Detail is
// a string for HTTPException and a list of objects for validation errors.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// =============================================================================
// TIMESTAMPS
// =============================================================================

// naiveLayout is what the backend emits for columns stored without a zone.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp decodes RFC 3339 or naive ISO 8601 datetimes. Naive values are
// taken as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// =============================================================================
// CONVERSION
// =============================================================================

func (r *CorrectResponse) toModel() *model.CorrectionResult {
	result := &model.CorrectionResult{
		OriginalText: r.OriginalText,
		Variants:     make([]model.Variant, 0, len(r.Variants)),
	}
	for _, v := range r.Variants {
		result.Variants = append(result.Variants, model.NewVariant(v.Text, v.Type, v.Reason))
	}
	return result
}

func (r *HistoryResponse) toModel() *model.HistoryPage {
	page := &model.HistoryPage{
		TotalCount: r.TotalCount,
		Items:      make([]model.HistoryItem, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		page.Items = append(page.Items, model.HistoryItem{
			ID:             it.ID,
			OriginalText:   it.OriginalText,
			CorrectedText:  it.CorrectedText,
			CorrectionType: model.ParseVariantType(it.CorrectionType),
			RawType:        it.CorrectionType,
			AIModelUsed:    it.AIModelUsed,
			CreatedAt:      it.CreatedAt.Time,
		})
	}
	return page
}
