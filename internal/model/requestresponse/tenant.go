package requestresponse

// TenantRequest : создание и обновление тенанта
type TenantRequest struct {
	Name    string `json:"name" example:"Tenant name"`
	Address string `json:"address" example:"Tenant address"`
}
