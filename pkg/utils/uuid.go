package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Document number prefixes
const (
	QuotationNoPrefix = "QT-"
	InvoiceNoPrefix   = "SC-"
	PurchaseNoPrefix  = "P-"
)

// GenerateDocumentNo generates a human readable document number: the prefix
// followed by eight uppercase hex characters of a random UUID.
func GenerateDocumentNo(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// DocumentNoGenerator produces candidate business keys for one document kind
type DocumentNoGenerator interface {
	Next() string
}

// PrefixedGenerator is the default DocumentNoGenerator
type PrefixedGenerator struct {
	Prefix string
}

// Next returns a fresh candidate key
func (g PrefixedGenerator) Next() string {
	return GenerateDocumentNo(g.Prefix)
}
