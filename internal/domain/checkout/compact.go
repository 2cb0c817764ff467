package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxCompactLength is the per-field metadata ceiling of the payment processor.
const MaxCompactLength = 500

const (
	pairSeparator  = ","
	fieldSeparator = ":"
)

var (
	ErrInvalidReference = errors.New("invalid catalog reference")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrCapacityExceeded = errors.New("compact items exceed metadata capacity")
)

// LineRef is the (externalId, quantity) pair that survives the round trip through the processor.
type LineRef struct {
	ExternalID string
	Quantity   int
}

// EncodeItems serializes refs as "id:qty,id:qty".
func EncodeItems(refs []LineRef) (string, error) {
	var b strings.Builder
	for i, ref := range refs {
		if ref.ExternalID == "" || strings.ContainsAny(ref.ExternalID, pairSeparator+fieldSeparator) {
			return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref.ExternalID)
		}
		if ref.Quantity < 1 {
			return "", fmt.Errorf("%w: %s has %d", ErrInvalidQuantity, ref.ExternalID, ref.Quantity)
		}
		if i > 0 {
			b.WriteString(pairSeparator)
		}
		b.WriteString(ref.ExternalID)
		b.WriteString(fieldSeparator)
		b.WriteString(strconv.Itoa(ref.Quantity))
	}

	if b.Len() > MaxCompactLength {
		return "", fmt.Errorf("%w: %d > %d characters", ErrCapacityExceeded, b.Len(), MaxCompactLength)
	}
	return b.String(), nil
}

// DecodeItems returns every well-formed pair in s. Malformed segments are
// reported through the joined error without discarding the valid ones.
func DecodeItems(s string) ([]LineRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var (
		refs []LineRef
		bad  []error
	)
	for i, segment := range strings.Split(s, pairSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		id, qtyText, found := strings.Cut(segment, fieldSeparator)
		id = strings.TrimSpace(id)
		if !found || id == "" {
			bad = append(bad, fmt.Errorf("segment %d %q: %w", i, segment, ErrInvalidReference))
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyText))
		if err != nil || qty < 1 {
			bad = append(bad, fmt.Errorf("segment %d %q: %w", i, segment, ErrInvalidQuantity))
			continue
		}
		refs = append(refs, LineRef{ExternalID: id, Quantity: qty})
	}
	return refs, errors.Join(bad...)
}
