package voice

// Substitution replaces every occurrence of From with To.
type Substitution struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Command names understood by the UI.
const (
	CommandPrevious = "previous"
	CommandNext     = "next"
	CommandEnd      = "end"
	CommandClear    = "clear"
)

// Default joke token and its reply.
const (
	DefaultJokeToken = "утка"
	DefaultJokeReply = "кря"
)

// DefaultSubstitutions returns the Russian number-word table. Entries are
// applied in order, so a word always comes before the words it contains,
// and a digit followed by a space collapses so that dictated digits join
// into one number ("один два" becomes "12"). The decimal separator word
// becomes a space, which later turns into the decimal point.
func DefaultSubstitutions() []Substitution {
	return []Substitution{
		{" граммов", ""}, {" грамма", ""}, {" грамм", ""},
		{"граммов", ""}, {"грамма", ""}, {"грамм", ""},

		{"одиннадцать", "11"}, {"двенадцать", "12"}, {"тринадцать", "13"},
		{"четырнадцать", "14"}, {"пятнадцать", "15"}, {"шестнадцать", "16"},
		{"восемнадцать", "18"}, {"семнадцать", "17"}, {"девятнадцать", "19"},

		{"двадцать ", "2"}, {"тридцать ", "3"}, {"сорок ", "4"},
		{"пятьдесят ", "5"}, {"шестьдесят ", "6"}, {"восемьдесят ", "8"},
		{"семьдесят ", "7"}, {"девяносто ", "9"},
		{"двадцать", "20"}, {"тридцать", "30"}, {"сорок", "40"},
		{"пятьдесят", "50"}, {"шестьдесят", "60"}, {"восемьдесят", "80"},
		{"семьдесят", "70"}, {"девяносто", "90"},
		{"десять", "10"},

		{"ноль ", "0"}, {"один ", "1"}, {"одна ", "1"}, {"два ", "2"},
		{"две ", "2"}, {"три ", "3"}, {"четыре ", "4"}, {"пять ", "5"},
		{"шесть ", "6"}, {"восемь ", "8"}, {"семь ", "7"}, {"девять ", "9"},
		{"ноль", "0"}, {"один", "1"}, {"одна", "1"}, {"два", "2"},
		{"две", "2"}, {"три", "3"}, {"четыре", "4"}, {"пять", "5"},
		{"шесть", "6"}, {"восемь", "8"}, {"семь", "7"}, {"девять", "9"},

		{"точка ", " "}, {"запятая ", " "},
	}
}

// DefaultCommands maps spoken phrases to command names.
func DefaultCommands() map[string]string {
	return map[string]string{
		"назад":      CommandPrevious,
		"предыдущий": CommandPrevious,
		"далее":      CommandNext,
		"дальше":     CommandNext,
		"следующий":  CommandNext,
		"конец":      CommandEnd,
		"стоп":       CommandEnd,
		"хватит":     CommandEnd,
		"стереть":    CommandClear,
		"удалить":    CommandClear,
	}
}
