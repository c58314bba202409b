package controllers

import (
	"strings"

	"relay/relay/types"
)

// customerDirectory is an illustrative fixture; the capability exists to
// exercise group-gated routes, not to expose a real data source.
var customerDirectory = []types.Customer{
	{ID: "cust-001", Name: "Acme Corporation", Email: "ops@acme.example.com", Status: "active"},
	{ID: "cust-002", Name: "Globex Industries", Email: "it@globex.example.com", Status: "active"},
	{ID: "cust-003", Name: "Initech LLC", Email: "admin@initech.example.com", Status: "suspended"},
	{ID: "cust-004", Name: "Umbrella Retail", Email: "contact@umbrella.example.com", Status: "active"},
}

type CustomerController struct{}

func NewCustomerController() *CustomerController {
	return &CustomerController{}
}

// Search filters the fixture by a case-insensitive substring match on name
// and email. An empty query returns the whole list.
func (c *CustomerController) Search(req types.CustomerSearchRequest) types.CustomerSearchResponse {
	query := strings.ToLower(strings.TrimSpace(req.Query))
	results := []types.Customer{}
	for _, cust := range customerDirectory {
		if query == "" ||
			strings.Contains(strings.ToLower(cust.Name), query) ||
			strings.Contains(strings.ToLower(cust.Email), query) {
			results = append(results, cust)
		}
	}
	return types.CustomerSearchResponse{Query: req.Query, Results: results}
}
