package ledger

// LeaseBalance is what the tenant owes: non-voided charges minus
// non-refunded payments. A negative balance is a credit.
func LeaseBalance(charges []Charge, payments []Payment) Cents {
	var balance Cents
	for i := range charges {
		if !charges[i].IsVoided {
			balance += charges[i].Amount
		}
	}
	for i := range payments {
		if !payments[i].IsRefunded {
			balance -= payments[i].Amount
		}
	}
	return balance
}

// HeldDeposit sums allocations on non-voided security deposit charges
func HeldDeposit(charges []Charge) Cents {
	var held Cents
	for i := range charges {
		c := &charges[i]
		if c.IsVoided || !c.Type.IsDeposit() {
			continue
		}
		held += c.Allocated()
	}
	return held
}

// RequiredDeposit sums the amounts of non-voided security deposit charges
func RequiredDeposit(charges []Charge) Cents {
	var required Cents
	for i := range charges {
		c := &charges[i]
		if c.IsVoided || !c.Type.IsDeposit() {
			continue
		}
		required += c.Amount
	}
	return required
}

// Arrears sums the positive remaining balances of non-voided charges that
// count as money owed to the landlord
func Arrears(charges []Charge) Cents {
	var arrears Cents
	for i := range charges {
		c := &charges[i]
		if c.IsVoided || !c.Type.CountsAsArrears() {
			continue
		}
		if r := c.Remaining(); r > 0 {
			arrears += r
		}
	}
	return arrears
}
