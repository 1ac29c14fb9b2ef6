package models

// Company owns trips and the company-wide auto-halt policy. Read-only from
// the ledger's point of view.
type Company struct {
	ID              int64
	Name            string
	DisableAutoHalt bool
}
