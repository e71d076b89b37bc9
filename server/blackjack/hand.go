package blackjack

// HandValue scores a hand of card ranks (ace = 1, face cards = 10).
// Aces are promoted from 1 to 11 one at a time as long as the total
// stays at or under 21.
func HandValue(ranks []int) int {
	total := 0
	aces := 0
	for _, r := range ranks {
		total += r
		if r == 1 {
			aces++
		}
	}
	for aces > 0 && total+10 <= 21 {
		total += 10
		aces--
	}
	return total
}
