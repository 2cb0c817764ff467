package request

type OrderLookupRequest struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
	Email       string `json:"email" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
	Notes          string `json:"notes"`
}
