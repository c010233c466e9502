package budget

import (
	"fmt"
	"time"
)

// Entry categories. An entry's category follows its amount's sign;
// zero counts as income.
const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

// DateLayout is the ISO form entry dates are stored in.
const DateLayout = "2006-01-02"

// Entry is one recorded transaction, in cents.
type Entry struct {
	ID       int
	Date     time.Time
	Amount   int
	TargetID int
	Note     string
}

func (e Entry) Category() string {
	if e.Amount >= 0 {
		return CategoryIncome
	}
	return CategoryExpense
}

// Row renders the entry as a list line. The target name is resolved by
// the caller; entries only carry the id.
func (e Entry) Row(targetName string) string {
	return fmt.Sprintf("%-8s%-12s%-12s%s",
		e.Date.Format("Jan 02"), Dollars(e.Amount), targetName, e.Note)
}
