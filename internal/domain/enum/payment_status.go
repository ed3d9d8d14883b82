package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents how far an invoice or purchase has been paid
type PaymentStatus int

const (
	PaymentStatusUnpaid  PaymentStatus = 0
	PaymentStatusPartial PaymentStatus = 1
	PaymentStatusPaid    PaymentStatus = 2
)

var paymentStatusNames = [...]string{"Unpaid", "Partial", "Paid"}

func (s PaymentStatus) String() string {
	if s < PaymentStatusUnpaid || s > PaymentStatusPaid {
		return fmt.Sprintf("PaymentStatus(%d)", int(s))
	}
	return paymentStatusNames[s]
}

// DerivePaymentStatus applies the payment rule: Paid when nothing is left and
// the document is not empty, Partial when something was paid and something is
// left, Unpaid otherwise.
func DerivePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	balance := total.Sub(paid)
	switch {
	case !balance.IsPositive() && !total.IsZero():
		return PaymentStatusPaid
	case balance.IsPositive() && paid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Unpaid":
		*s = PaymentStatusUnpaid
	case "Partial":
		*s = PaymentStatusPartial
	case "Paid":
		*s = PaymentStatusPaid
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	case []byte:
		i, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}
		*s = PaymentStatus(i)
	}
	return nil
}
