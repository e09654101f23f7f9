package services

// ServiceInfo is one row of the clinic's price list.
type ServiceInfo struct {
	Name  string `json:"name"`
	Price int    `json:"price"` // USD
}

var servicePricing = map[string]ServiceInfo{
	"crown":  {Name: "Ceramic Crown", Price: 120},
	"bridge": {Name: "Fixed Bridge", Price: 220},
	"veneer": {Name: "Aesthetic Veneer", Price: 180},
}

// LookupService resolves a service code to its display name and price. An
// unknown code maps to a zero-price placeholder so a stale or hand-edited
// form value never fails a booking.
func LookupService(code string) ServiceInfo {
	if info, ok := servicePricing[code]; ok {
		return info
	}
	return ServiceInfo{Name: "Unknown Service", Price: 0}
}
