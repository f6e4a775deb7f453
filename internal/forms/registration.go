package forms

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/internal/validate"
)

// ConsumerForm mirrors the consumer registration inputs, in display order.
type ConsumerForm struct {
	Name     string `form:"nomeConsumidor" json:"nomeConsumidor" validate:"notblank"`
	CPF      string `form:"cpfConsumidor" json:"cpfConsumidor" validate:"cpf"`
	Address  string `form:"enderecoConsumidor" json:"enderecoConsumidor" validate:"notblank"`
	Phone    string `form:"telefoneConsumidor" json:"telefoneConsumidor" validate:"phone"`
	Email    string `form:"emailConsumidor" json:"emailConsumidor" validate:"email_loose"`
	Password string `form:"senhaConsumidor" json:"senhaConsumidor" validate:"password"`
}

// SellerForm mirrors the seller registration inputs, in display order.
type SellerForm struct {
	Name     string `form:"nomeVendedor" json:"nomeVendedor" validate:"notblank"`
	CPF      string `form:"cpfVendedor" json:"cpfVendedor" validate:"cpf"`
	Address  string `form:"enderecoVendedor" json:"enderecoVendedor" validate:"notblank"`
	Phone    string `form:"telefoneVendedor" json:"telefoneVendedor" validate:"phone"`
	Email    string `form:"emailVendedor" json:"emailVendedor" validate:"email_loose"`
	Password string `form:"senhaVendedor" json:"senhaVendedor" validate:"password"`
	Bank     string `form:"bancoVendedor" json:"bancoVendedor" validate:"notblank"`
	Branch   string `form:"agenciaVendedor" json:"agenciaVendedor" validate:"notblank"`
	Account  string `form:"contaVendedor" json:"contaVendedor" validate:"notblank"`
}

// SubmitConsumer validates f and builds the consumer record. Nothing is stored.
func SubmitConsumer(f ConsumerForm) (domain.Consumer, validate.Errors) {
	if errs := defaultValidator.Struct(&f); len(errs) > 0 {
		return domain.Consumer{}, errs
	}
	c, err := newConsumer(f.Name, f.CPF, f.Address, f.Phone, f.Email, f.Password)
	if err != nil {
		return domain.Consumer{}, validate.Errors{{Field: "senhaConsumidor", Message: err.Error()}}
	}
	zap.L().Info("consumer registration accepted",
		zap.String("name", c.Name),
		zap.String("email", c.Email))
	return c, nil
}

// SubmitSeller validates f and builds the seller record. Nothing is stored.
func SubmitSeller(f SellerForm) (domain.Seller, validate.Errors) {
	if errs := defaultValidator.Struct(&f); len(errs) > 0 {
		return domain.Seller{}, errs
	}
	c, err := newConsumer(f.Name, f.CPF, f.Address, f.Phone, f.Email, f.Password)
	if err != nil {
		return domain.Seller{}, validate.Errors{{Field: "senhaVendedor", Message: err.Error()}}
	}
	s := domain.Seller{
		Consumer: c,
		Bank:     strings.TrimSpace(f.Bank),
		Branch:   strings.TrimSpace(f.Branch),
		Account:  strings.TrimSpace(f.Account),
	}
	zap.L().Info("seller registration accepted",
		zap.String("name", s.Name),
		zap.String("email", s.Email),
		zap.String("bank", s.Bank))
	return s, nil
}

// HashPassword bcrypts the base64 SHA-256 digest of password, which keeps
// the bcrypt input at 44 bytes whatever the password length.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a HashPassword result.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password)) == nil
}

func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func newConsumer(name, cpf, address, phone, email, password string) (domain.Consumer, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return domain.Consumer{}, err
	}
	return domain.Consumer{
		Name:         strings.TrimSpace(name),
		CPF:          strings.TrimSpace(cpf),
		Address:      strings.TrimSpace(address),
		Phone:        strings.TrimSpace(phone),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}, nil
}
