package fpd

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/playable/internal/core"
)

// Screen names one step of the capture form.
type Screen string

const (
	ScreenAge    Screen = "age"
	ScreenGender Screen = "gender"
	ScreenEmail  Screen = "email"
)

// AgeOptions and GenderOptions are the picker choices, in display order.
var (
	AgeOptions    = []string{"under 18", "18-24", "25-34", "35-44", "45-54", "55+"}
	GenderOptions = []string{"female", "male", "other", "prefer not to say"}
)

// Form walks the enabled capture screens in order. Age and gender are
// option pickers driven by semantic actions; email is a free-text input that
// consumes raw key messages and validates on submit.
type Form struct {
	screens []Screen
	idx     int

	ageIdx    int
	genderIdx int
	email     textinput.Model
	emailErr  string

	values map[string]string
	done   bool
}

// NewForm builds a form for the requested screens. A request with no screens
// enabled yields an already-done form; callers should not reach that state
// because capture routing checks Screens.Any() first.
func NewForm(req Request) *Form {
	f := &Form{values: make(map[string]string)}
	if req.Screens.Age {
		f.screens = append(f.screens, ScreenAge)
	}
	if req.Screens.Gender {
		f.screens = append(f.screens, ScreenGender)
	}
	if req.Screens.Email {
		f.screens = append(f.screens, ScreenEmail)
	}
	f.done = len(f.screens) == 0

	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.CharLimit = 64
	ti.Width = 32
	f.email = ti
	f.syncFocus()
	return f
}

// Screen returns the active screen.
func (f *Form) Screen() Screen {
	if f.done || f.idx >= len(f.screens) {
		return ""
	}
	return f.screens[f.idx]
}

// Done reports whether every screen has been completed.
func (f *Form) Done() bool {
	return f.done
}

// Values returns the captured answers keyed by screen name. Only call after
// Done; earlier the map holds completed screens only.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// OptionIndex returns the highlighted option on the active picker screen.
func (f *Form) OptionIndex() int {
	switch f.Screen() {
	case ScreenAge:
		return f.ageIdx
	case ScreenGender:
		return f.genderIdx
	}
	return 0
}

// Options returns the choices for the active picker screen, or nil on the
// email screen.
func (f *Form) Options() []string {
	switch f.Screen() {
	case ScreenAge:
		return AgeOptions
	case ScreenGender:
		return GenderOptions
	}
	return nil
}

// EmailView renders the email input line for drawing into the canvas.
func (f *Form) EmailView() string {
	return f.email.View()
}

// Error returns the inline validation message for the active screen, empty
// when the last submit was clean.
func (f *Form) Error() string {
	return f.emailErr
}

// HandleAction applies one semantic input to the form. Left/Up and
// Right/Down move the picker highlight; Select confirms the active screen.
// On the email screen only Select is meaningful here, everything else goes
// through HandleKey.
func (f *Form) HandleAction(a core.Action) {
	if f.done {
		return
	}
	switch f.Screen() {
	case ScreenAge:
		f.ageIdx = cycle(f.ageIdx, len(AgeOptions), a)
		if a == core.ActionSelect {
			f.complete(ScreenAge, AgeOptions[f.ageIdx])
		}
	case ScreenGender:
		f.genderIdx = cycle(f.genderIdx, len(GenderOptions), a)
		if a == core.ActionSelect {
			f.complete(ScreenGender, GenderOptions[f.genderIdx])
		}
	case ScreenEmail:
		if a == core.ActionSelect {
			f.submitEmail()
		}
	}
}

// HandleKey feeds a raw key message to the email input. It reports whether
// the message was consumed, so hosts can fall back to semantic actions on
// other screens.
func (f *Form) HandleKey(msg tea.KeyMsg) bool {
	if f.Screen() != ScreenEmail {
		return false
	}
	if msg.Type == tea.KeyEnter {
		f.submitEmail()
		return true
	}
	f.email, _ = f.email.Update(msg)
	if f.emailErr != "" {
		// Clear the inline error as soon as the user resumes typing.
		f.emailErr = ""
	}
	return true
}

func (f *Form) submitEmail() {
	addr := strings.TrimSpace(f.email.Value())
	if err := ValidateEmail(addr); err != nil {
		f.emailErr = err.Error()
		return
	}
	f.emailErr = ""
	f.complete(ScreenEmail, addr)
}

func (f *Form) complete(s Screen, value string) {
	f.values[string(s)] = value
	f.idx++
	if f.idx >= len(f.screens) {
		f.done = true
	}
	f.syncFocus()
}

func (f *Form) syncFocus() {
	if f.Screen() == ScreenEmail {
		f.email.Focus()
	} else {
		f.email.Blur()
	}
}

func cycle(idx, n int, a core.Action) int {
	switch a {
	case core.ActionLeft, core.ActionUp:
		return (idx - 1 + n) % n
	case core.ActionRight, core.ActionDown:
		return (idx + 1) % n
	}
	return idx
}
