package commerce

import (
	"context"
	"net/url"

	"github.com/omega-wallet/storefront-api/internal/pricing"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type orderItemDTO struct {
	ID           string `json:"_id"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Quantity     int    `json:"quantity"`
	Price        any    `json:"price"`
	Reviewed     bool   `json:"reviewed"`
}

type orderDTO struct {
	ID             string                `json:"_id"`
	Email          string                `json:"email"`
	Status         string                `json:"status"`
	TrackingNumber string                `json:"trackingNumber"`
	Carrier        string                `json:"carrier"`
	CreatedAt      string                `json:"createdAt"`
	Total          any                   `json:"total"`
	Items          []orderItemDTO        `json:"items"`
	Shipping       types.ShippingPayload `json:"shipping"`
}

func normalizeOrder(dto orderDTO) types.Order {
	order := types.Order{
		ID:             dto.ID,
		Email:          dto.Email,
		Status:         dto.Status,
		TrackingNumber: dto.TrackingNumber,
		Carrier:        dto.Carrier,
		CreatedAt:      dto.CreatedAt,
		Total:          pricing.Amount(dto.Total),
		Shipping:       dto.Shipping,
	}
	for _, item := range dto.Items {
		order.Items = append(order.Items, types.OrderLineItem{
			ID:           item.ID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Price:        pricing.Amount(item.Price),
			Reviewed:     item.Reviewed,
		})
	}
	return order
}

// SingleOrder looks up one order by id and the email it was placed with.
// Both are required by the platform as a lightweight ownership check.
func (c *Client) SingleOrder(ctx context.Context, orderID, email string) (types.Order, error) {
	query := url.Values{}
	query.Set("orderId", orderID)
	query.Set("email", email)
	var dto orderDTO
	if err := c.get(ctx, "/order/single-order", query, &dto); err != nil {
		return types.Order{}, err
	}
	return normalizeOrder(dto), nil
}

// AddReview submits per-line-item ratings for a delivered order.
func (c *Client) AddReview(ctx context.Context, req types.ReviewRequest) error {
	return c.postJSON(ctx, "/review/add", req, nil)
}
