package api

import "time"

// Paging describes the server's pagination of a list response.
type Paging struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Collection is a paged list response. Every list endpoint returns one and
// the client always replaces its previous collection with it wholesale;
// partial merges are never attempted.
type Collection[T any] struct {
	Items  []T    `json:"items"`
	Paging Paging `json:"paging"`
}

// ListParams are the pagination parameters every list endpoint accepts.
// Resource-specific filters ride alongside in each service function.
type ListParams struct {
	Page  int
	Limit int
}

// errorBody is the shape of a server error payload. Servers are inconsistent
// about the field name, so both are tried.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// Seller is an approved seller account as listed by the admin API.
// Only the fields the client displays or filters on are modeled.
type Seller struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	ShopName  string    `json:"shopName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// SellerProfile is the full profile view of one seller.
type SellerProfile struct {
	Seller
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Registration is a pending seller registration awaiting review.
type Registration struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	ShopName     string    `json:"shopName"`
	Status       string    `json:"status"`
	RejectReason string    `json:"rejectReason"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Shop is a storefront record.
type Shop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	OwnerName string    `json:"ownerName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account is a marketplace user account as listed by the admin API.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Banner is a promotional banner slot.
type Banner struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl"`
	LinkURL  string    `json:"linkUrl"`
	Position string    `json:"position"`
	Status   string    `json:"status"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
}

// BannerInput is the create/update payload for a banner. Timestamps are
// canonical RFC 3339 UTC; the server performs all cross-field validation.
type BannerInput struct {
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl"`
	LinkURL  string    `json:"linkUrl,omitempty"`
	Position string    `json:"position"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
}

// Report is a user complaint filed against a shop, product, or user.
type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporterId"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReportDetail is the full view of one report.
type ReportDetail struct {
	Report
	Description string `json:"description"`
}

// GMVPoint is one period bucket of gross merchandise value statistics.
type GMVPoint struct {
	Period string  `json:"period"`
	GMV    float64 `json:"gmv"`
	Orders int     `json:"orders"`
}

// GMVStatistics is the revenue analytics response for one period grouping.
type GMVStatistics struct {
	Period string     `json:"period"`
	Points []GMVPoint `json:"points"`
	Total  float64    `json:"total"`
}

// ShopRevenue is one row of the per-shop revenue breakdown.
type ShopRevenue struct {
	ShopID   string  `json:"shopId"`
	ShopName string  `json:"shopName"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
}

// UploadResult is the response of the multipart image upload endpoint.
type UploadResult struct {
	URL string `json:"url"`
}
