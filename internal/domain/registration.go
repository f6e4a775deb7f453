package domain

import "time"

// Consumer is a validated consumer registration. It is reported, never stored.
type Consumer struct {
	Name         string    `json:"name"`
	CPF          string    `json:"cpf"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Seller is a consumer registration plus bank details.
type Seller struct {
	Consumer
	Bank    string `json:"bank"`
	Branch  string `json:"branch"`
	Account string `json:"account"`
}
