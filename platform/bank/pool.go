// Package bank holds the shared pot fed by taxes and fines.
package bank

// Pool never goes below zero.
type Pool struct {
	amount int
}

func NewPool(amount int) *Pool {
	if amount < 0 {
		amount = 0
	}
	return &Pool{amount: amount}
}

func (p *Pool) Balance() int {
	return p.amount
}

func (p *Pool) Deposit(amount int) {
	if amount > 0 {
		p.amount += amount
	}
}

// Withdraw pays out up to amount and returns what was actually paid.
func (p *Pool) Withdraw(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > p.amount {
		amount = p.amount
	}
	p.amount -= amount
	return amount
}

// Lend funds a loan of the full amount. The bank covers what the pool cannot,
// so the pool only drops to zero.
func (p *Pool) Lend(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.amount -= amount
	if p.amount < 0 {
		p.amount = 0
	}
	return amount
}

// PayoutAll empties the pool.
func (p *Pool) PayoutAll() int {
	return p.Withdraw(p.amount)
}
