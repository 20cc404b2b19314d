package ledger

// The transfer family of the standardized token interface is
// permanently disabled: reputation is bound to the account it was
// assigned to. These entry points reject before touching any state or
// parameters, so they behave identically on every input.

// Transfer always fails with UNSUPPORTED.
func (l *Ledger) Transfer(Call) error {
	return NewUnsupported("transfer")
}

// UpdateOperator always fails with UNSUPPORTED.
func (l *Ledger) UpdateOperator(Call) error {
	return NewUnsupported("update_operator")
}

// OperatorOf always fails with UNSUPPORTED.
func (l *Ledger) OperatorOf(Call) error {
	return NewUnsupported("operator_of")
}
