package engine

// payPlayer moves amount from debtor to creditor. A debtor who cannot cover it
// goes bankrupt to the creditor instead and false is returned.
func (s *Session) payPlayer(debtor, creditor *Player, amount int) bool {
	if amount <= 0 {
		return true
	}
	if debtor.Cash < amount {
		s.bankruptToPlayer(debtor, creditor)
		return false
	}
	debtor.Cash -= amount
	creditor.Cash += amount
	return true
}

// payBank pays amount into the pool, or bankrupts the debtor to the bank.
func (s *Session) payBank(debtor *Player, amount int) bool {
	if !s.chargeBank(debtor, amount) {
		return false
	}
	s.pool.Deposit(amount)
	return true
}

// chargeBank removes amount from the game entirely, or bankrupts the debtor to the bank.
func (s *Session) chargeBank(debtor *Player, amount int) bool {
	if amount <= 0 {
		return true
	}
	if debtor.Cash < amount {
		s.bankruptToBank(debtor)
		return false
	}
	debtor.Cash -= amount
	return true
}

// bankruptToPlayer hands every asset of debtor to creditor as is.
func (s *Session) bankruptToPlayer(debtor, creditor *Player) {
	for _, id := range debtor.Properties() {
		s.ledger.Transfer(debtor, creditor, id)
	}
	creditor.Cash += debtor.Cash
	creditor.JailCards += debtor.JailCards
	s.record("%s is bankrupt, assets go to %s", debtor.Username, creditor.Username)
	s.log.WithField("player", debtor.Id).WithField("creditor", creditor.Id).Info("player bankrupt")
	s.retire(debtor)
}

// bankruptToBank returns the debtor's properties to the bank unbuilt and
// unmortgaged; remaining cash goes to the pool.
func (s *Session) bankruptToBank(debtor *Player) {
	for _, id := range debtor.Properties() {
		s.ledger.release(debtor, id)
	}
	s.pool.Deposit(debtor.Cash)
	s.record("%s is bankrupt, assets return to the bank", debtor.Username)
	s.log.WithField("player", debtor.Id).Info("player bankrupt to bank")
	s.retire(debtor)
}

func (s *Session) retire(p *Player) {
	p.Cash = 0
	p.JailCards = 0
	p.Bankrupt = true
	p.InJail = false
	p.JailTurns = 0
	s.checkWinner()
}

func (s *Session) checkWinner() {
	var alive []*Player
	for _, p := range s.players {
		if !p.Bankrupt {
			alive = append(alive, p)
		}
	}
	if len(alive) == 1 {
		s.finish(alive[0].Id)
	}
}
