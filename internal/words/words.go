package words

import "math/rand"

// Bank is the default word bank. Each new game without an explicit word draws
// a random entry from the configured bank.
var Bank = []string{
	"PUZZLEMENT",
	"LUMBERJACK",
	"JACKHAMMER",
	"MOZZARELLA",
	"INTERMEZZO",
	"JACKRABBIT",
	"PICKPOCKET",
	"CHIMPANZEE",
	"BACKGAMMON",
	"PRIZEFIGHT",
	"IMMOBILIZE",
	"EARTHQUAKE",
}

// Random picks a random word from bank.
func Random(bank []string) string {
	return bank[rand.Intn(len(bank))]
}
