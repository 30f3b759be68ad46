package scan

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Lookup is the outcome of parsing a scanned payload. Exactly one field is
// populated, in this precedence: ItemID, ArticleTerm, SearchTerm.
type Lookup struct {
	ItemID      uint   // payload resolved to an item id
	ArticleTerm string // JSON payload carried an article name
	SearchTerm  string // free text, substring search over article/komponen/kolom
}

type qrPayload struct {
	ID      uint   `json:"id"`
	Article string `json:"article"`
}

var (
	codePattern = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)
	nonDigits   = regexp.MustCompile(`[^0-9]`)
)

// ParseQRData decodes the payloads printed on existing labels, in this exact
// order: JSON with an id or article field, a bare numeric id, a
// letters-then-digits code (ITEM000123, WH000123) with the letters stripped,
// and finally anything else as a free-text search term. The precedence is
// load-bearing for labels already in circulation, do not reorder it.
func ParseQRData(qrData string) Lookup {
	qrData = strings.TrimSpace(qrData)

	var payload qrPayload
	if err := json.Unmarshal([]byte(qrData), &payload); err == nil {
		if payload.ID != 0 {
			return Lookup{ItemID: payload.ID}
		}
		if payload.Article != "" {
			return Lookup{ArticleTerm: payload.Article}
		}
	}

	if n, err := strconv.Atoi(qrData); err == nil && n > 0 {
		return Lookup{ItemID: uint(n)}
	}

	if codePattern.MatchString(qrData) {
		digits := nonDigits.ReplaceAllString(qrData, "")
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			return Lookup{ItemID: uint(n)}
		}
	}

	return Lookup{SearchTerm: qrData}
}
