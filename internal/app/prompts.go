package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tally/internal/budget"
	"tally/internal/command"
	"tally/internal/validate"
)

// errAskAgain re-asks the current prompt without posting a message.
var errAskAgain = errors.New("")

// maxNoteLen bounds entry notes.
const maxNoteLen = 50

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// datePrompt reads "month day [year]" into dst. Empty input means
// today; the month is matched by name prefix and may not be "all".
func datePrompt(dst *time.Time) command.Prompt {
	return command.Prompt{
		Label: "Date: ",
		Apply: func(raw string) error {
			fields := strings.Fields(raw)
			if len(fields) == 0 {
				*dst = today()
				return nil
			}
			if len(fields) < 2 || len(fields) > 3 {
				return errors.New("Invalid input.")
			}
			args := validate.NewArgs(fields)
			monthVal, err := vMonth(false).Required().Apply(args)
			if err != nil {
				return errors.New("Invalid input.")
			}
			dayVal, err := vDay().Required().Apply(args)
			if err != nil {
				return errors.New("Invalid input.")
			}
			yearVal, _ := vYear().Default(today().Year()).Apply(args)
			month := monthVal.(budget.Month)
			day := dayVal.(int)
			date := time.Date(yearVal.(int), time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if date.Day() != day || date.Month() != time.Month(month) {
				return errors.New("Invalid input.")
			}
			*dst = date
			return nil
		},
	}
}

// amountPrompt reads a signed nonzero whole-dollar amount into dst, in
// cents.
func amountPrompt(dst *int) command.Prompt {
	return command.Prompt{
		Label: "Amount: ",
		Apply: func(raw string) error {
			raw = strings.TrimSpace(raw)
			if !strings.HasPrefix(raw, "+") && !strings.HasPrefix(raw, "-") {
				return budget.ErrAmountSign
			}
			cents, err := budget.ParseAmount(raw)
			if err != nil {
				return err
			}
			if cents == 0 {
				return budget.ErrAmountInvalid
			}
			*dst = cents
			return nil
		},
	}
}

// targetPrompt reads an existing target name and stores its id in dst.
// The hint lists the choices; entering "help" repeats them.
func (a *App) targetPrompt(dst *int) command.Prompt {
	return command.Prompt{
		Label: "Target: ",
		Hint:  fmt.Sprintf("(%s)", strings.Join(a.targetNames(), ", ")),
		Apply: func(raw string) error {
			name := strings.ToLower(strings.TrimSpace(raw))
			if name == "help" {
				return fmt.Errorf("(%s)", strings.Join(a.targetNames(), ", "))
			}
			t, err := a.store.TargetByName(name)
			if err != nil {
				return errors.New("Invalid target given. Enter 'help' to see targets.")
			}
			*dst = t.ID
			return nil
		},
	}
}

// notePrompt reads a note into dst. Empty input becomes "...".
func notePrompt(dst *string) command.Prompt {
	return command.Prompt{
		Label: "Note: ",
		Apply: func(raw string) error {
			if len(raw) > maxNoteLen {
				return errors.New("Note must be 50 characters or less.")
			}
			if raw == "" {
				raw = "..."
			}
			*dst = raw
			return nil
		},
	}
}

// confirmPrompt asks a yes/no question. A no answer aborts the whole
// command; anything but yes/no/y/n re-asks.
func confirmPrompt(question string) command.Prompt {
	return command.Prompt{
		Label: question,
		Apply: func(raw string) error {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "yes", "y":
				return nil
			case "no", "n":
				return command.ErrAborted
			default:
				return errAskAgain
			}
		},
	}
}
