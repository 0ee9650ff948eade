package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxItemNameLen    = 255
	maxOrderQuantity  = 10000
	maxAmountCents    = int64(100_000_000) // 1M in cents
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errItemNameEmptyFmt        = "item name cannot be empty"
	errItemNameMaxLengthFmt    = "item name must not exceed %d characters"
	errItemNameControlCharsFmt = "item name cannot contain control characters"
	errQuantityMinFmt          = "quantity must be at least 1"
	errQuantityMaxFmt          = "quantity must not exceed %d"
	errAmountNegativeFmt       = "amount cannot be negative"
	errAmountMaxFmt            = "amount exceeds maximum of %d cents"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func ItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errItemNameEmptyFmt)
	}

	if len(name) > maxItemNameLen {
		return fmt.Errorf(errItemNameMaxLengthFmt, maxItemNameLen)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errItemNameControlCharsFmt)
		}
	}

	return nil
}

func Quantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf(errQuantityMinFmt)
	}

	if quantity > maxOrderQuantity {
		return fmt.Errorf(errQuantityMaxFmt, maxOrderQuantity)
	}

	return nil
}

func AmountCents(amount int64) error {
	if amount < 0 {
		return fmt.Errorf(errAmountNegativeFmt)
	}

	if amount > maxAmountCents {
		return fmt.Errorf(errAmountMaxFmt, maxAmountCents)
	}

	return nil
}
