package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("prompt cancelled")

// Filter modes offered after the city prompt
const (
	FilterNone  = "none"
	FilterMonth = "month"
	FilterDay   = "day"
	FilterBoth  = "both"
)

// filterChoice holds the raw answers of the selection form
type filterChoice struct {
	city  string
	mode  string
	month string
	day   string
}

// toSelection validates the answers into a Selection.
// Month and day only apply when the chosen mode asks for them.
func (c filterChoice) toSelection() (models.Selection, error) {
	month, day := "all", models.AllDays
	if c.mode == FilterMonth || c.mode == FilterBoth {
		month = c.month
	}
	if c.mode == FilterDay || c.mode == FilterBoth {
		day = c.day
	}
	return models.NewSelection(c.city, month, day)
}

func cityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.Cities))
	for _, c := range models.Cities {
		opts = append(opts, huh.NewOption(c.Title(), string(c)))
	}
	return opts
}

func monthOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.Months)-1)
	for _, m := range models.Months {
		if m == models.AllMonths {
			continue
		}
		opts = append(opts, huh.NewOption(m.Title(), m.String()))
	}
	return opts
}

func dayOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		opts = append(opts, huh.NewOption(d, d))
	}
	return opts
}

// PromptForSelection asks for a city and the optional month and day filters
func PromptForSelection() (models.Selection, error) {
	choice := filterChoice{
		city:  string(models.Chicago),
		mode:  FilterNone,
		month: models.January.String(),
		day:   models.Weekdays[0],
	}

	wantsMonth := func() bool { return choice.mode == FilterMonth || choice.mode == FilterBoth }
	wantsDay := func() bool { return choice.mode == FilterDay || choice.mode == FilterBoth }

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a city to explore").
				Options(cityOptions()...).
				Value(&choice.city),
			huh.NewSelect[string]().
				Title("Filter the data").
				Description("Analyse everything or narrow it down by month and/or day of the week").
				Options(
					huh.NewOption("No filter", FilterNone),
					huh.NewOption("By month", FilterMonth),
					huh.NewOption("By day of the week", FilterDay),
					huh.NewOption("By month and day", FilterBoth),
				).
				Value(&choice.mode),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which month?").
				Options(monthOptions()...).
				Value(&choice.month),
		).WithHideFunc(func() bool { return !wantsMonth() }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which day?").
				Options(dayOptions()...).
				Value(&choice.day),
		).WithHideFunc(func() bool { return !wantsDay() }),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return models.Selection{}, promptError(err)
	}

	return choice.toSelection()
}

// ConfirmRawData asks whether to page through the raw trip rows of a view
// holding rows trips
func ConfirmRawData(rows, pageSize int) (bool, error) {
	return confirm(rawDataPrompt(rows, pageSize), "Rows are shown one page at a time")
}

func rawDataPrompt(rows, pageSize int) string {
	return NewPaginator(rows, pageSize).Prompt()
}

// ConfirmRestart asks whether to run another analysis
func ConfirmRestart() (bool, error) {
	return confirm("Would you like to restart?", "")
}

func confirm(title, description string) (bool, error) {
	var ok bool

	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if description != "" {
		field = field.Description(description)
	}

	form := huh.NewForm(huh.NewGroup(field)).WithTheme(NewAppTheme())
	if err := form.Run(); err != nil {
		return false, promptError(err)
	}
	return ok, nil
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return fmt.Errorf("failed to run prompt: %w", err)
}
