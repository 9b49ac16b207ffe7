package model

import (
	"fmt"
	"strings"
)

// MinClaimLength is the shortest claim text accepted for checking.
// Anything shorter is too ambiguous to search for.
const MinClaimLength = 10

// Claim represents a single factual assertion to verify
type Claim struct {
	Text string `json:"text"` // The claim text itself
}

// NewClaim trims and validates raw claim text.
func NewClaim(text string) (Claim, error) {
	c := Claim{Text: strings.TrimSpace(text)}
	if err := c.Validate(); err != nil {
		return Claim{}, err
	}
	return c, nil
}

// Validate reports whether the claim is checkable.
func (c Claim) Validate() error {
	if c.Text == "" {
		return fmt.Errorf("claim is empty")
	}
	if len(c.Text) < MinClaimLength {
		return fmt.Errorf("claim too short: %d chars (minimum %d)", len(c.Text), MinClaimLength)
	}
	return nil
}
