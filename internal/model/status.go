package model

// Status is the document lifecycle state.
//
// draft -> sent happens only through a successful Send; draft|sent ->
// signed happens only through a signed-file upload. StatusPaid is declared
// in the lifecycle but no operation produces it yet (pending product
// decision on a payment trigger); CanTransition rejects every edge into it.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusSent   Status = "sent"
	StatusSigned Status = "signed"
	StatusPaid   Status = "paid"
)

// Valid reports whether s is a declared lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusSigned, StatusPaid:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle permits moving from s to
// next. Staying put is always allowed; status never moves backward.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusSent || next == StatusSigned
	case StatusSent:
		return next == StatusSigned
	}
	return false
}
