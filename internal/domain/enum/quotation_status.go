package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QuotationStatus represents the status of a quotation
type QuotationStatus int

const (
	QuotationStatusPending  QuotationStatus = 0
	QuotationStatusApproved QuotationStatus = 1
	QuotationStatusSent     QuotationStatus = 2
	QuotationStatusRejected QuotationStatus = 3
)

var quotationStatusNames = [...]string{"pending", "approved", "sent", "rejected"}

func (s QuotationStatus) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("QuotationStatus(%d)", int(s))
	}
	return quotationStatusNames[s]
}

// IsValid reports whether s is one of the known statuses
func (s QuotationStatus) IsValid() bool {
	return s >= QuotationStatusPending && s <= QuotationStatusRejected
}

// IsLocked reports whether a quotation in this status can no longer be edited.
func (s QuotationStatus) IsLocked() bool {
	return s == QuotationStatusApproved || s == QuotationStatusRejected
}

// ParseQuotationStatus parses a status name, case-insensitively
func ParseQuotationStatus(str string) (QuotationStatus, bool) {
	for i, name := range quotationStatusNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return QuotationStatus(i), true
		}
	}
	return 0, false
}

// QuotationStatuses lists every status in display order
func QuotationStatuses() []QuotationStatus {
	return []QuotationStatus{
		QuotationStatusPending,
		QuotationStatusApproved,
		QuotationStatusSent,
		QuotationStatusRejected,
	}
}

func (s QuotationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuotationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !QuotationStatus(i).IsValid() {
			return fmt.Errorf("invalid quotation status %d", i)
		}
		*s = QuotationStatus(i)
		return nil
	}
	parsed, ok := ParseQuotationStatus(str)
	if !ok {
		return fmt.Errorf("invalid quotation status %q", str)
	}
	*s = parsed
	return nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuotationStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuotationStatus(v)
	case int:
		*s = QuotationStatus(v)
	case []byte:
		i, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}
		*s = QuotationStatus(i)
	}
	return nil
}
