package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Thesaidctm/automate/internal/domain"
	"github.com/Thesaidctm/automate/internal/usecase"
	"github.com/Thesaidctm/automate/internal/usecase/mocks"
)

func TestPriceField_Write(t *testing.T) {
	tests := []struct {
		name       string
		mask       mocks.Mask
		target     string
		setupMocks func(m *mocks.MockMetrics)
		wantWrites int
		wantValue  string
		wantErr    error
	}{
		{
			name:   "right-filling mask takes the digits",
			mask:   mocks.MaskCents,
			target: "87,04",
			setupMocks: func(m *mocks.MockMetrics) {
				m.EXPECT().WriteAttempt("digits", true)
			},
			wantWrites: 1,
			wantValue:  "87,04",
		},
		{
			name:   "grouped amount through the mask",
			mask:   mocks.MaskCents,
			target: "1.234,50",
			setupMocks: func(m *mocks.MockMetrics) {
				m.EXPECT().WriteAttempt("digits", true)
			},
			wantWrites: 1,
			wantValue:  "1.234,50",
		},
		{
			name:   "plain input falls back to the formatted amount",
			mask:   mocks.MaskPlain,
			target: "87,04",
			setupMocks: func(m *mocks.MockMetrics) {
				gomock.InOrder(
					m.EXPECT().WriteAttempt("digits", false),
					m.EXPECT().WriteAttempt("formatted", true),
				)
			},
			wantWrites: 2,
			wantValue:  "87,04",
		},
		{
			name:   "input ignoring key presses accepts the pasted amount",
			mask:   mocks.MaskNoTyping,
			target: "120,00",
			setupMocks: func(m *mocks.MockMetrics) {
				gomock.InOrder(
					m.EXPECT().WriteAttempt("digits", false),
					m.EXPECT().WriteAttempt("formatted", true),
				)
			},
			wantWrites: 2,
			wantValue:  "120,00",
		},
		{
			name:   "frozen input fails verification",
			mask:   mocks.MaskFrozen,
			target: "87,04",
			setupMocks: func(m *mocks.MockMetrics) {
				m.EXPECT().WriteAttempt(gomock.Any(), false).Times(2)
			},
			wantWrites: 2,
			wantValue:  "80,00",
			wantErr:    domain.ErrWriteVerification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			metrics := mocks.NewMockMetrics(ctrl)
			tt.setupMocks(metrics)

			sel := testSelectors()
			app := mocks.NewFakeApp(sel, 0, mocks.Record{Code: "1.1", Price: "80,00"})
			app.Mask = tt.mask
			openForm(t, app, sel, "1.1")

			field := usecase.NewPriceField(app, sel, testOptions(), &mocks.Retrier{}, metrics, nopLogger())
			ctx := context.Background()

			input, err := field.Find(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = field.Write(ctx, input, amount(t, tt.target))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !strings.Contains(err.Error(), tt.wantValue) {
					t.Errorf("error should report the field content, got %q", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if app.Writes != tt.wantWrites {
				t.Errorf("expected %d writes, got %d", tt.wantWrites, app.Writes)
			}
			if got, _ := input.Value(ctx); got != tt.wantValue {
				t.Errorf("expected field %q, got %q", tt.wantValue, got)
			}
		})
	}
}

func TestPriceField_Read(t *testing.T) {
	sel := testSelectors()
	app := mocks.NewFakeApp(sel, 0, mocks.Record{Code: "1.1", Price: "R$ 1.234,56"})
	openForm(t, app, sel, "1.1")

	field := usecase.NewPriceField(app, sel, testOptions(), &mocks.Retrier{}, nil, nopLogger())
	ctx := context.Background()

	input, err := field.Find(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, raw, ok := field.Read(ctx, input)
	if !ok {
		t.Fatal("expected a parseable amount")
	}
	if raw != "R$ 1.234,56" {
		t.Errorf("unexpected raw value %q", raw)
	}
	if !domain.SameAmount(got, amount(t, "1234,56")) {
		t.Errorf("expected 1234.56, got %s", got)
	}
}

func TestPriceField_FindMissingInput(t *testing.T) {
	sel := testSelectors()
	app := mocks.NewFakeApp(sel, 0, mocks.Record{Code: "1.1", Price: "80,00"})
	app.NoPriceInput = true
	openForm(t, app, sel, "1.1")

	field := usecase.NewPriceField(app, sel, testOptions(), &mocks.Retrier{}, nil, nopLogger())
	_, err := field.Find(context.Background())
	if !errors.Is(err, domain.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}
