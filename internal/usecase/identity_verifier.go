package usecase

import (
	"context"
	"strings"

	"github.com/Thesaidctm/automate/internal/domain"
)

// IdentityVerifier confirms that the opened edit surface belongs to the intended
// "<macro>.<sub>" code. A row click can land on a neighbour when the list re-renders
// between locating the row and clicking it.
type IdentityVerifier struct {
	page Page
	sel  Selectors
	opts Options
}

// NewIdentityVerifier creates a new IdentityVerifier.
func NewIdentityVerifier(page Page, sel Selectors, opts Options) *IdentityVerifier {
	return &IdentityVerifier{
		page: page,
		sel:  sel,
		opts: opts,
	}
}

// Identity is the record identity shown on an edit surface.
type Identity struct {
	Macro string
	Item  string
}

// Matches reports whether the identity equals the two segments of code.
func (id Identity) Matches(code string) bool {
	macro, sub, ok := domain.HierarchicalParts(code)
	if !ok {
		return false
	}
	return domain.SameNumber(id.Macro, macro) && domain.SameNumber(id.Item, sub)
}

func (id Identity) String() string {
	if id.Macro == "" && id.Item == "" {
		return "unknown"
	}
	return id.Macro + "." + id.Item
}

// Verify compares the first number shown in the macro-group and item-number fields
// with the two segments of code and returns the identity it read. Codes that are
// not two-level always pass without reading the form.
func (v *IdentityVerifier) Verify(ctx context.Context, code string) (Identity, bool, error) {
	if _, _, ok := domain.HierarchicalParts(code); !ok {
		return Identity{}, true, nil
	}

	id, err := v.Read(ctx)
	if err != nil {
		return Identity{}, false, err
	}
	return id, id.Matches(code), nil
}

// Read extracts the identity of the opened record. Fields that never appear read as "".
func (v *IdentityVerifier) Read(ctx context.Context) (Identity, error) {
	macroText, err := v.readField(ctx, v.sel.MacroField)
	if err != nil {
		return Identity{}, err
	}
	itemText, err := v.readField(ctx, v.sel.ItemField)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Macro: domain.FirstDigits(macroText),
		Item:  domain.FirstDigits(itemText),
	}, nil
}

// readField returns the field text, or "" when it never appears.
func (v *IdentityVerifier) readField(ctx context.Context, sel Selector) (string, error) {
	el, err := ChainOf(sel).Await(ctx, v.page, v.opts.ElementTimeout, v.opts.PollInterval)
	if err != nil || el == nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(text), nil
}
