package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusSigned, true},
		{StatusSent, StatusSigned, true},
		{StatusDraft, StatusDraft, true},
		{StatusSent, StatusSent, true},

		// never backward
		{StatusSent, StatusDraft, false},
		{StatusSigned, StatusSent, false},
		{StatusSigned, StatusDraft, false},

		// paid is declared but nothing reaches it yet
		{StatusDraft, StatusPaid, false},
		{StatusSent, StatusPaid, false},
		{StatusSigned, StatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTypeValid(t *testing.T) {
	assert.True(t, TypeInvoice.Valid())
	assert.True(t, TypeChangeOrder.Valid())
	assert.True(t, TypeContract.Valid())
	assert.False(t, Type("estimate").Valid())
}

func TestDisplayNumber(t *testing.T) {
	doc := &Document{Number: "CO-2026-0042"}
	assert.Equal(t, "CO-2026-0042", doc.DisplayNumber())

	doc.IsCorrection = true
	assert.Equal(t, "CO-2026-0042-CORRECTED", doc.DisplayNumber())
}
