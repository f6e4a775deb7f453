package domain

import "strings"

// Product is one sellable catalog item. The JSON shape is the persisted
// wire format of the catalog payload.
type Product struct {
	ID           string  `json:"id" csv:"id"`
	PhotoURL     string  `json:"photoUrl" csv:"photo_url"`
	Name         string  `json:"name" csv:"name"`
	Description  string  `json:"description" csv:"description"`
	Price        float64 `json:"price" csv:"price"`
	LeadTimeDays int     `json:"leadTimeDays" csv:"lead_time_days"`
	Available    bool    `json:"available" csv:"available"`
}

// AvailabilityLabel is the status text shown next to a product.
func (p Product) AvailabilityLabel() string {
	if p.Available {
		return "Available"
	}
	return "Unavailable"
}

// Normalize trims the free text fields in place.
func (p *Product) Normalize() {
	p.PhotoURL = strings.TrimSpace(p.PhotoURL)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
}

// SeedProducts are written when the catalog key has never been stored.
func SeedProducts() []Product {
	return []Product{
		{
			ID:           "prod1",
			PhotoURL:     "https://via.placeholder.com/100x100?text=Produto+1",
			Name:         "Smartphone XYZ",
			Description:  "Smartphone Android com câmera 48MP e bateria de longa duração.",
			Price:        1200.50,
			LeadTimeDays: 5,
			Available:    true,
		},
		{
			ID:           "prod2",
			PhotoURL:     "https://via.placeholder.com/100x100?text=Produto+2",
			Name:         "Fone Bluetooth ABC",
			Description:  "Fone de ouvido sem fio com cancelamento de ruído.",
			Price:        350.00,
			LeadTimeDays: 2,
			Available:    false,
		},
		{
			ID:           "prod3",
			PhotoURL:     "https://via.placeholder.com/100x100?text=Produto+3",
			Name:         `Livro "A Arte da Programação"`,
			Description:  "Um clássico para programadores de todos os níveis.",
			Price:        85.90,
			LeadTimeDays: 7,
			Available:    true,
		},
	}
}
