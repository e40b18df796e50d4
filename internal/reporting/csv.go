// Package reporting renders normalized datasets as flat training files.
package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"recsys-export-lab/internal/domain"
)

// InteractionsCSVHeader is the column list of the interactions dataset file.
const InteractionsCSVHeader = "USER_ID,ITEM_ID,EVENT_TYPE,TIMESTAMP,SHOP_ID,EVENT_VALUE,ORDER_VALUE,BASKET_SIZE,PAYMENT_METHOD,DELIVERY_LOCATION"

// ItemsCSVHeader is the column list of the items dataset file.
const ItemsCSVHeader = "ITEM_ID,STATUS,GENDER,ORIGIN,STYLE,SEASONS,PRICE_MIN,PRICE_MAX,CATEGORY_L1,CATEGORY_L2,CATEGORY_L3,CATEGORY_L4,CREATION_TIMESTAMP"

// RenderInteractionsCSV renders interaction events as a CSV string.
func RenderInteractionsCSV(events []*domain.InteractionEvent) string {
	var sb strings.Builder

	sb.WriteString(InteractionsCSVHeader)
	sb.WriteByte('\n')

	for _, e := range events {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%s,%s,%s,%d,%s,%s\n",
			e.ActorID,
			e.TargetID,
			e.EventType,
			e.Timestamp,
			e.ShopID,
			formatFloat(e.EventValue),
			formatFloat(e.OrderValue),
			e.BasketSize,
			e.PaymentMethod,
			e.DeliveryLocation,
		))
	}

	return sb.String()
}

// RenderItemsCSV renders product records as a CSV string. Absent price bounds
// render as empty cells.
func RenderItemsCSV(records []*domain.ProductRecord) string {
	var sb strings.Builder

	sb.WriteString(ItemsCSVHeader)
	sb.WriteByte('\n')

	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%d\n",
			r.ItemID,
			r.Status,
			r.Gender,
			r.Origin,
			r.Style,
			r.Seasons,
			formatOptionalFloat(r.PriceMin),
			formatOptionalFloat(r.PriceMax),
			r.Categories[0],
			r.Categories[1],
			r.Categories[2],
			r.Categories[3],
			r.CreationTimestamp,
		))
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
