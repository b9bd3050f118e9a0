package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jobblox/crm-api/internal/domain/entity"
)

// Documentos JSONB. Las entidades del dominio no llevan tags JSON, así que la
// forma persistida se define aquí y se mantiene estable aunque el dominio cambie.

type lineItemDoc struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Taxable     bool            `json:"taxable"`
}

func marshalLineItems(items []entity.LineItem) ([]byte, error) {
	docs := make([]lineItemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, lineItemDoc(it))
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}
	return b, nil
}

func unmarshalLineItems(raw []byte) ([]entity.LineItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []lineItemDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	items := make([]entity.LineItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, entity.LineItem(d))
	}
	return items, nil
}

type timeSlotDoc struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

func marshalAvailability(av map[string][]entity.TimeSlot) ([]byte, error) {
	if av == nil {
		return []byte("{}"), nil
	}
	docs := make(map[string][]timeSlotDoc, len(av))
	for day, slots := range av {
		converted := make([]timeSlotDoc, 0, len(slots))
		for _, s := range slots {
			converted = append(converted, timeSlotDoc(s))
		}
		docs[day] = converted
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal availability: %w", err)
	}
	return b, nil
}

func unmarshalAvailability(raw []byte) (map[string][]entity.TimeSlot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs map[string][]timeSlotDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal availability: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	out := make(map[string][]entity.TimeSlot, len(docs))
	for day, slots := range docs {
		converted := make([]entity.TimeSlot, 0, len(slots))
		for _, s := range slots {
			converted = append(converted, entity.TimeSlot(s))
		}
		out[day] = converted
	}
	return out, nil
}

type preferencesDoc struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

func marshalPreferences(p entity.UserPreferences) ([]byte, error) {
	b, err := json.Marshal(preferencesDoc(p))
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	return b, nil
}

func unmarshalPreferences(raw []byte) (entity.UserPreferences, error) {
	if len(raw) == 0 {
		return entity.UserPreferences{}, nil
	}
	var doc preferencesDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entity.UserPreferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return entity.UserPreferences(doc), nil
}
