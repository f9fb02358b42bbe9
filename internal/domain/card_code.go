package domain

import "fmt"

// CardCode is the single source of truth for a card's printed identifiers.
// The source data kept three independently mutable columns (legacy, v2 and
// unified control numbers) that could drift apart; here one canonical key
// plus the sequence number renders every surface form.
//
// Canonical shape: <REGION><KIND><BATCH CORE><INDEX>, e.g. MOC000123AB001.
type CardCode struct {
	Canonical string
	Sequence  int
}

// Unified renders the current region-qualified form: MO-C000123AB-001.
func (c CardCode) Unified() string {
	if len(c.Canonical) < 6 {
		return c.Canonical
	}
	return c.Canonical[:2] + "-" + c.Canonical[2:len(c.Canonical)-3] + "-" + c.Canonical[len(c.Canonical)-3:]
}

// Legacy renders the pre-region dash-joined form: C000123AB-001.
// Legacy cards predate regions, so the region letters are dropped.
func (c CardCode) Legacy() string {
	if len(c.Canonical) < 6 {
		return c.Canonical
	}
	return c.Canonical[2:len(c.Canonical)-3] + "-" + c.Canonical[len(c.Canonical)-3:]
}

// SequenceRef renders the 5-digit zero-padded sequence reference.
func (c CardCode) SequenceRef() string {
	return fmt.Sprintf("%05d", c.Sequence)
}
