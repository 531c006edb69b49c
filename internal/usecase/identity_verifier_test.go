package usecase_test

import (
	"context"
	"testing"

	"github.com/Thesaidctm/automate/internal/usecase"
	"github.com/Thesaidctm/automate/internal/usecase/mocks"
)

// openForm clicks the edit affordance of code's row.
func openForm(t *testing.T, app *mocks.FakeApp, sel usecase.Selectors, code string) {
	t.Helper()
	ctx := context.Background()

	row, err := usecase.ExactLine{Rows: sel.Rows, Line: code}.Locate(ctx, app)
	if err != nil || row == nil {
		t.Fatalf("row %s not rendered: %v", code, err)
	}
	edit, err := usecase.ChainOf(sel.EditInRow...).First(ctx, row)
	if err != nil || edit == nil {
		t.Fatalf("no edit affordance for %s: %v", code, err)
	}
	if err := edit.Click(ctx); err != nil {
		t.Fatalf("click edit: %v", err)
	}
}

func TestIdentityVerifier_Verify(t *testing.T) {
	tests := []struct {
		name         string
		records      []mocks.Record
		open         string
		code         string
		wantResult   bool
		wantIdentity string
	}{
		{
			name:         "right record",
			records:      []mocks.Record{{Code: "2.7", Price: "1,00"}},
			open:         "2.7",
			code:         "2.7",
			wantResult:   true,
			wantIdentity: "2.7",
		},
		{
			name:       "leading zeros compare numerically",
			records:    []mocks.Record{{Code: "02.07", Price: "1,00"}},
			open:       "02.07",
			code:       "2.7",
			wantResult: true,
		},
		{
			name: "neighbour opened",
			records: []mocks.Record{
				{Code: "2.7", Price: "1,00", WrongOpens: 1},
				{Code: "2.8", Price: "1,00"},
			},
			open:         "2.7",
			code:         "2.7",
			wantResult:   false,
			wantIdentity: "2.8",
		},
		{
			name:       "non hierarchical code always passes",
			records:    []mocks.Record{{Code: "A-12", Price: "1,00"}},
			open:       "A-12",
			code:       "A-12",
			wantResult: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := testSelectors()
			app := mocks.NewFakeApp(sel, 0, tt.records...)
			openForm(t, app, sel, tt.open)

			verifier := usecase.NewIdentityVerifier(app, sel, testOptions())
			id, ok, err := verifier.Verify(context.Background(), tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantResult {
				t.Errorf("expected %v, got %v", tt.wantResult, ok)
			}
			if tt.wantIdentity != "" && id.String() != tt.wantIdentity {
				t.Errorf("expected identity %s, got %s", tt.wantIdentity, id)
			}
		})
	}
}

func TestIdentityVerifier_Read(t *testing.T) {
	sel := testSelectors()
	app := mocks.NewFakeApp(sel, 0,
		mocks.Record{Code: "4.1", Price: "1,00", WrongOpens: 1},
		mocks.Record{Code: "4.2", Price: "1,00"},
	)
	openForm(t, app, sel, "4.1")

	id, err := usecase.NewIdentityVerifier(app, sel, testOptions()).Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "4.2" {
		t.Errorf("expected identity 4.2, got %s", id)
	}
	if id.Matches("4.1") {
		t.Error("4.2 must not match 4.1")
	}
}

func TestIdentityVerifier_ReadWithoutFields(t *testing.T) {
	sel := testSelectors()
	app := mocks.NewFakeApp(sel, 0, mocks.Record{Code: "4.1", Price: "1,00"})

	// Still on the list: the identity fields never appear.
	id, err := usecase.NewIdentityVerifier(app, sel, testOptions()).Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "unknown" {
		t.Errorf("expected unknown identity, got %s", id)
	}
	if id.Matches("4.1") {
		t.Error("an unknown identity matches nothing")
	}
}
