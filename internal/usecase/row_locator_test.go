package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Thesaidctm/automate/internal/usecase"
	"github.com/Thesaidctm/automate/internal/usecase/mocks"
)

func longList(n int) []mocks.Record {
	records := make([]mocks.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, mocks.Record{Code: fmt.Sprintf("3.%d", i), Price: "1,00"})
	}
	return records
}

func TestRowLocator_Locate(t *testing.T) {
	tests := []struct {
		name      string
		window    int
		code      string
		wantFound bool
	}{
		{name: "already rendered", window: 10, code: "3.4", wantFound: true},
		{name: "revealed by container scroll", window: 10, code: "3.35", wantFound: true},
		{name: "last row", window: 10, code: "3.40", wantFound: true},
		{name: "absent code", window: 10, code: "9.9", wantFound: false},
		{name: "short list without scroll container", window: 0, code: "9.9", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := testSelectors()
			app := mocks.NewFakeApp(sel, tt.window, longList(40)...)
			locator := usecase.NewRowLocator(app, sel, testOptions(), nopLogger())

			ctx := context.Background()
			row, found, err := locator.Locate(ctx, tt.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found != tt.wantFound {
				t.Fatalf("expected found=%v, got %v", tt.wantFound, found)
			}
			if !found {
				if row != nil {
					t.Error("expected nil row when not found")
				}
				return
			}

			text, _ := row.Text(ctx)
			if text != tt.code+"\n1,00" {
				t.Errorf("located wrong row %q", text)
			}
			if visible, _ := row.Visible(ctx); !visible {
				t.Error("located row should be rendered")
			}
		})
	}
}

func TestRowLocator_CanceledContext(t *testing.T) {
	sel := testSelectors()
	app := mocks.NewFakeApp(sel, 10, longList(40)...)
	locator := usecase.NewRowLocator(app, sel, testOptions(), nopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := locator.Locate(ctx, "3.1")
	if err == nil {
		t.Fatal("expected context error")
	}
	if found {
		t.Error("nothing can be found after cancellation")
	}
}
