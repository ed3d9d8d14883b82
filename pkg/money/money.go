package money

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// LineInput holds the raw figures of a single invoice line.
type LineInput struct {
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	DiscountPct decimal.Decimal
	VATPct      decimal.Decimal
}

// LineAmounts holds every derived figure of an invoice line
type LineAmounts struct {
	Base           decimal.Decimal `json:"base"`
	NetUnitPrice   decimal.Decimal `json:"net_unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Net            decimal.Decimal `json:"net"`
	VATPerUnit     decimal.Decimal `json:"vat_per_unit"`
	VAT            decimal.Decimal `json:"vat"`
	TotalWithVAT   decimal.Decimal `json:"total_with_vat"`
}

// DocumentTotals holds the header figures of an invoice
type DocumentTotals struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	VAT          decimal.Decimal `json:"vat"`
	Discount     decimal.Decimal `json:"discount"`
	TotalWithVAT decimal.Decimal `json:"total_with_vat"`
	Received     decimal.Decimal `json:"received"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// Percent returns pct percent of amount.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// QuotationLineTotal is quantity x unit price; quotation lines carry no VAT or discount.
func QuotationLineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Line computes the derived figures of an invoice line. VAT is charged on the
// unit price net of the line discount.
func Line(in LineInput) LineAmounts {
	base := in.Quantity.Mul(in.UnitPrice)
	netUnit := in.UnitPrice.Sub(Percent(in.UnitPrice, in.DiscountPct))
	net := in.Quantity.Mul(netUnit)
	vatPerUnit := Percent(netUnit, in.VATPct)
	vat := in.Quantity.Mul(vatPerUnit)

	return LineAmounts{
		Base:           base,
		NetUnitPrice:   netUnit,
		DiscountAmount: base.Sub(net),
		Net:            net,
		VATPerUnit:     vatPerUnit,
		VAT:            vat,
		TotalWithVAT:   net.Add(vat),
	}
}

// InvoiceTotals folds the lines into document totals. Line discounts and the
// flat document discount both land in Discount, so TotalWithVAT stays
// TotalAmount + VAT - Discount.
func InvoiceTotals(lines []LineInput, flatDiscount, received decimal.Decimal) DocumentTotals {
	totalAmount := decimal.Zero
	vat := decimal.Zero
	discount := flatDiscount

	for _, l := range lines {
		amounts := Line(l)
		totalAmount = totalAmount.Add(amounts.Base)
		vat = vat.Add(amounts.VAT)
		discount = discount.Add(amounts.DiscountAmount)
	}

	totalWithVAT := TotalWithVAT(totalAmount, vat, discount)
	return DocumentTotals{
		TotalAmount:  totalAmount,
		VAT:          vat,
		Discount:     discount,
		TotalWithVAT: totalWithVAT,
		Received:     received,
		Remaining:    Balance(totalWithVAT, received),
	}
}

// TotalWithVAT is total + vat - discount.
func TotalWithVAT(total, vat, discount decimal.Decimal) decimal.Decimal {
	return total.Add(vat).Sub(discount)
}

// Balance is what is still owed after paid; negative means credit.
func Balance(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}

// Credit returns the overpaid part of a balance, or zero.
func Credit(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return balance.Neg()
	}
	return decimal.Zero
}

// Round rounds to two places for display.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
