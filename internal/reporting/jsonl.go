package reporting

import (
	"encoding/json"
	"fmt"
	"strings"

	"recsys-export-lab/internal/domain"
)

// interactionLine is the JSONL wire form of one interaction event.
type interactionLine struct {
	UserID           string  `json:"user_id"`
	ItemID           string  `json:"item_id"`
	EventType        string  `json:"event_type"`
	Timestamp        int64   `json:"timestamp"`
	ShopID           string  `json:"shop_id"`
	EventValue       float64 `json:"event_value"`
	OrderValue       float64 `json:"order_value"`
	BasketSize       int     `json:"basket_size"`
	PaymentMethod    string  `json:"payment_method"`
	DeliveryLocation string  `json:"delivery_location"`
}

// itemLine is the JSONL wire form of one product record.
type itemLine struct {
	ItemID            string   `json:"item_id"`
	Status            string   `json:"status"`
	Gender            string   `json:"gender"`
	Origin            string   `json:"origin"`
	Style             string   `json:"style"`
	Seasons           string   `json:"seasons"`
	PriceMin          *float64 `json:"price_min"`
	PriceMax          *float64 `json:"price_max"`
	CategoryL1        string   `json:"category_l1"`
	CategoryL2        string   `json:"category_l2"`
	CategoryL3        string   `json:"category_l3"`
	CategoryL4        string   `json:"category_l4"`
	CreationTimestamp int64    `json:"creation_timestamp"`
}

// RenderInteractionsJSONL renders interaction events as one JSON object per line.
func RenderInteractionsJSONL(events []*domain.InteractionEvent) (string, error) {
	var sb strings.Builder

	for _, e := range events {
		line, err := json.Marshal(interactionLine{
			UserID:           e.ActorID,
			ItemID:           e.TargetID,
			EventType:        string(e.EventType),
			Timestamp:        e.Timestamp,
			ShopID:           e.ShopID,
			EventValue:       e.EventValue,
			OrderValue:       e.OrderValue,
			BasketSize:       e.BasketSize,
			PaymentMethod:    e.PaymentMethod,
			DeliveryLocation: e.DeliveryLocation,
		})
		if err != nil {
			return "", fmt.Errorf("marshal interaction line: %w", err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// RenderItemsJSONL renders product records as one JSON object per line.
func RenderItemsJSONL(records []*domain.ProductRecord) (string, error) {
	var sb strings.Builder

	for _, r := range records {
		line, err := json.Marshal(itemLine{
			ItemID:            r.ItemID,
			Status:            r.Status.String(),
			Gender:            r.Gender,
			Origin:            r.Origin,
			Style:             r.Style,
			Seasons:           r.Seasons,
			PriceMin:          r.PriceMin,
			PriceMax:          r.PriceMax,
			CategoryL1:        r.Categories[0],
			CategoryL2:        r.Categories[1],
			CategoryL3:        r.Categories[2],
			CategoryL4:        r.Categories[3],
			CreationTimestamp: r.CreationTimestamp,
		})
		if err != nil {
			return "", fmt.Errorf("marshal item line: %w", err)
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}
