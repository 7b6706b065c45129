package phonedata

import "fmt"

// CardType identifies the telecom operator a number prefix belongs to.
type CardType uint8

// Card types as stored in the index. The values are part of the file format.
const (
	CMCC  CardType = iota + 1 // China Mobile
	CUCC                      // China Unicom
	CTCC                      // China Telecom
	CTCCV                     // China Telecom virtual operator
	CUCCV                     // China Unicom virtual operator
	CMCCV                     // China Mobile virtual operator
	CBCC                      // China Broadnet
	CBCCV                     // China Broadnet virtual operator
)

var cardTypes = [...]struct {
	name        string
	description string
}{
	CMCC:  {"China Mobile", "中国移动"},
	CUCC:  {"China Unicom", "中国联通"},
	CTCC:  {"China Telecom", "中国电信"},
	CTCCV: {"China Telecom (virtual)", "中国电信虚拟运营商"},
	CUCCV: {"China Unicom (virtual)", "中国联通虚拟运营商"},
	CMCCV: {"China Mobile (virtual)", "中国移动虚拟运营商"},
	CBCC:  {"China Broadnet", "中国广电"},
	CBCCV: {"China Broadnet (virtual)", "中国广电虚拟运营商"},
}

// ParseCardType converts an index card type byte into a CardType.
func ParseCardType(code uint8) (CardType, error) {
	if code < uint8(CMCC) || code > uint8(CBCCV) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOperatorCode, code)
	}
	return CardType(code), nil
}

// Valid reports whether c is one of the known card types.
func (c CardType) Valid() bool {
	return c >= CMCC && c <= CBCCV
}

// Description returns the operator description as published in the database,
// e.g. "中国移动".
func (c CardType) Description() string {
	if !c.Valid() {
		return ""
	}
	return cardTypes[c].description
}

// String returns the English operator name.
func (c CardType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("CardType(%d)", uint8(c))
	}
	return cardTypes[c].name
}
