package app

import (
	"strconv"
	"strings"

	"tally/internal/budget"
	"tally/internal/validate"
)

// reservedWords can never be target names; they would collide with
// command arguments. Month names are reserved so a target name never
// shadows a timeframe token.
var reservedWords = map[string]bool{
	"income":  true,
	"expense": true,
	"all":     true,
	"target":  true,
	"targets": true,
	"entry":   true,
	"entries": true,
	"default": true,
}

func init() {
	for _, m := range budget.Months() {
		reservedWords[strings.ToLower(m.String())] = true
	}
}

// maxTargetName bounds target names to the width of the name column.
const maxTargetName = 12

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// vMonth matches a month by name prefix, yielding a budget.Month.
func vMonth(includeAll bool) validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		m, ok := budget.MatchMonth(tok, includeAll)
		if !ok {
			return nil, false
		}
		return m, true
	})
}

// vYear matches a four-digit year, yielding an int.
func vYear() validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		if len(tok) != 4 || !isDigits(tok) {
			return nil, false
		}
		year, err := strconv.Atoi(tok)
		if err != nil {
			return nil, false
		}
		return year, true
	})
}

// vDay matches a day of the month, 1 through 31.
func vDay() validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		if !isDigits(tok) {
			return nil, false
		}
		day, err := strconv.Atoi(tok)
		if err != nil || day < 1 || day > 31 {
			return nil, false
		}
		return day, true
	})
}

// vID matches a line number, yielding an int.
func vID() validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		if !isDigits(tok) {
			return nil, false
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, false
		}
		return id, true
	})
}

// vType matches an entry category. "expenses" folds into "expense".
func vType() validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		switch strings.ToLower(tok) {
		case budget.CategoryIncome:
			return budget.CategoryIncome, true
		case budget.CategoryExpense, "expenses":
			return budget.CategoryExpense, true
		}
		return nil, false
	})
}

// vAmount matches a signed whole-dollar amount, yielding cents.
func vAmount(allowZero bool) validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		cents, err := budget.ParseAmount(tok)
		if err != nil {
			return nil, false
		}
		if cents == 0 && !allowZero {
			return nil, false
		}
		return cents, true
	})
}

// vTarget matches the lowercase name of an existing target.
func (a *App) vTarget() validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		name := strings.ToLower(tok)
		if reservedWords[name] || len(name) > maxTargetName {
			return nil, false
		}
		for _, existing := range a.targetNames() {
			if name == existing {
				return name, true
			}
		}
		return nil, false
	})
}

// vNewTarget matches a name usable for a new target: not reserved, not
// overlong, not already taken.
func (a *App) vNewTarget() validate.Validator {
	return validate.New(func(tok string) (any, bool) {
		name := strings.ToLower(tok)
		if reservedWords[name] || len(name) > maxTargetName {
			return nil, false
		}
		for _, existing := range a.targetNames() {
			if name == existing {
				return nil, false
			}
		}
		return name, true
	})
}
