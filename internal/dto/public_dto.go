package dto

// PublicBillResponse is the unauthenticated viewer payload: the resolved bill
// plus the shop profile, nothing else. The resolver only answers exact-match
// lookups, so this is the entire public read surface.
type PublicBillResponse struct {
	Bill BillResponse `json:"bill"`
	Shop ShopResponse `json:"shop"`
}
